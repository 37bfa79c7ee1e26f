package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/form"
)

// SignUpForm GET /sign-up
func (h *Web) SignUpForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.tmpl", gin.H{"title": "Sign up", "form": form.SignUpForm{}})
}

// SignUp POST /sign-up：重复邮箱不算错误，提示后去登录
func (h *Web) SignUp(c *gin.Context) {
	var f form.SignUpForm
	if err := c.ShouldBind(&f); err != nil {
		f.Password = ""
		h.render(c, http.StatusBadRequest, "signup.tmpl", gin.H{"title": "Sign up", "form": f, "errors": form.ErrorsOf(err)})
		return
	}
	u, err := h.users.Register(c.Request.Context(), f.Email, f.Password, f.Name)
	if errors.Is(err, service.ErrEmailTaken) {
		h.flashRedirect(c, MsgAlreadySignedUp, "/login")
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	h.log.Info("user registered", zap.Uint("uid", u.ID), zap.String("role", string(u.Role)))
	if err := h.sessions.Login(c.Writer, c.Request, u.ID); err != nil {
		h.internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginForm GET /login
func (h *Web) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.tmpl", gin.H{"title": "Log in", "form": form.LoginForm{}})
}

// Login POST /login；不区分“邮箱不存在”和“密码错误”
func (h *Web) Login(c *gin.Context) {
	var f form.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		f.Password = ""
		h.render(c, http.StatusBadRequest, "login.tmpl", gin.H{"title": "Log in", "form": f, "errors": form.ErrorsOf(err)})
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), f.Email, f.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.flashRedirect(c, MsgBadLogin, "/login")
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	if err := h.sessions.Login(c.Writer, c.Request, u.ID); err != nil {
		h.internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout GET /logout
func (h *Web) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.log.Warn("logout failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}
