package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cafe-directory/internal/transport/http/form"
	resp "cafe-directory/internal/transport/http/response"
)

/* ================== Action：一行注册一个 REST 接口 ================== */

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindForm  Binder = "form"  // 表单（x-www-form-urlencoded / multipart）
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.Query 取
)

// 统一错误对象，渲染成 {"error": {Title: Msg}}
type AErr struct {
	Code  int
	Title string // 为空时按 Code 取默认标题
	Msg   any    // 字符串，或字段错误表
	Err   error
}

func (e *AErr) Error() string {
	if s, ok := e.Msg.(string); ok && s != "" {
		return s
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg any) error      { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method string // "GET" | "POST" | "PATCH" | "DELETE"
	Path   string // 例："/search_cafe"、"/update-open/:id"
	Binder Binder
	// Key 成功时的外层 key；为空则直接输出 O
	Key string
	// Middleware 只作用于该接口，先于绑定执行（例如 api_key 校验）
	Middleware []gin.HandlerFunc
	Handler    func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在分组下注册动作接口
func RegisterAction[I any, O any](g gin.IRoutes, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindForm:
			bindErr = c.ShouldBind(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			writeErr(c, BadRequest(form.ErrorsOf(bindErr)))
			return
		}

		// 2) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			writeErr(c, err)
			return
		}
		if a.Key == "" {
			c.JSON(http.StatusOK, out)
			return
		}
		c.JSON(http.StatusOK, resp.OK(a.Key, out))
	}

	handlers := append(append([]gin.HandlerFunc{}, a.Middleware...), h)
	g.Handle(strings.ToUpper(a.Method), a.Path, handlers...)
}

// 3) 统一错误映射；非 AErr 一律 500，细节只进日志
func writeErr(c *gin.Context, err error) {
	var ae *AErr
	if !errors.As(err, &ae) {
		ae = &AErr{Code: http.StatusInternalServerError, Msg: "Something went wrong.", Err: err}
	}
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	title := ae.Title
	if title == "" {
		title = resp.TitleOf(ae.Code)
	}
	msg := ae.Msg
	if msg == nil {
		msg = resp.TitleOf(ae.Code)
	}
	c.JSON(ae.Code, resp.Titled(title, msg))
}

// ParamID 路径里的 :name 必须是正整数，否则按不存在处理
func ParamID(c *gin.Context, name string, notFoundMsg string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, NotFound(notFoundMsg)
	}
	return uint(n), nil
}
