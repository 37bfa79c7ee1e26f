// Package handler 页面路由的处理函数：校验 -> 鉴权 -> 写库 -> 跳转/渲染。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/form"
	mdw "cafe-directory/internal/transport/http/middleware"
)

// Flash 文案
const (
	MsgLoginToComment  = "You need to login or register to comment."
	MsgLoginToAdd      = "You need to login or register to add a cafe."
	MsgAlreadySignedUp = "You've already signed up with that email, log in instead!"
	MsgBadLogin        = "Invalid email or password."
	MsgCafeAdded       = "Thanks! The cafe has been added."
	MsgCafeDeleted     = "Cafe deleted."
	MsgReviewDeleted   = "Review deleted."
	MsgUserDeleted     = "User deleted."
	MsgNoSelfDelete    = "You can't delete your own account."
	MsgForbidden       = "You don't have permission to access this page."
	MsgNotFound        = "Sorry, we couldn't find that page."
	MsgServerError     = "Something went wrong. Please try again."
)

type Web struct {
	cafes    *service.CafeService
	users    *service.UserService
	reviews  *service.ReviewService
	contact  *service.ContactService
	sessions *auth.Sessions
	log      *zap.Logger
}

func NewWeb(cafes *service.CafeService, users *service.UserService, reviews *service.ReviewService,
	contact *service.ContactService, sessions *auth.Sessions, l *zap.Logger) *Web {
	if l == nil {
		l = zap.NewNop()
	}
	return &Web{cafes: cafes, users: users, reviews: reviews, contact: contact, sessions: sessions, log: l}
}

// render 补上当前用户、flash、空错误表
func (h *Web) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = mdw.CurrentUser(c)
	data["flashes"] = h.sessions.Flashes(c.Writer, c.Request)
	if _, ok := data["errors"]; !ok {
		data["errors"] = form.FieldErrors{}
	}
	c.HTML(status, name, data)
}

func (h *Web) flashRedirect(c *gin.Context, msg, to string) {
	if err := h.sessions.AddFlash(c.Writer, c.Request, msg); err != nil {
		h.log.Warn("save flash failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, to)
}

func (h *Web) fail(c *gin.Context, status int, msg string) {
	h.render(c, status, "error.tmpl", gin.H{"title": http.StatusText(status), "status": status, "message": msg})
}

// internal 记日志，页面上只给通用提示
func (h *Web) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Error("request failed", zap.String("rid", c.GetString(mdw.KeyRequestID)), zap.Error(err))
	h.fail(c, http.StatusInternalServerError, MsgServerError)
}

// notFoundOr 已知的“不存在”错误渲染 404，其余按 500
func (h *Web) notFoundOr(c *gin.Context, err error, notFound ...error) {
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			h.fail(c, http.StatusNotFound, MsgNotFound)
			return
		}
	}
	h.internal(c, err)
}

// pathID 非正整数的 id 当作不存在
func (h *Web) pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		h.fail(c, http.StatusNotFound, MsgNotFound)
		return 0, false
	}
	return uint(n), true
}

func (h *Web) NotFound(c *gin.Context) { h.fail(c, http.StatusNotFound, MsgNotFound) }

// Forbidden 管理员路由的拒绝页
func (h *Web) Forbidden(c *gin.Context) { h.fail(c, http.StatusForbidden, MsgForbidden) }

// LoginToAdd 未登录访问 /add
func (h *Web) LoginToAdd(c *gin.Context) { h.flashRedirect(c, MsgLoginToAdd, "/login") }
