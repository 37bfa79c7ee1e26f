package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cafe-directory/internal/domain"
	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/form"
	mdw "cafe-directory/internal/transport/http/middleware"
)

// REST 文案
const (
	MsgNoSuchName   = "Sorry, we don't have a cafe with that name."
	MsgNoSuchID     = "Sorry a cafe with that id was not found in the database."
	MsgCafeAdded    = "Successfully added the new cafe."
	MsgDuplicate    = "Sorry, a cafe with that name, address or link already exists."
	MsgOpenUpdated  = "Successfully updated the opening time."
	MsgCloseUpdate  = "Successfully updated the closing time."
	MsgHoursTooLong = "Please use at most 7 characters, e.g. 06:30AM."
	MsgReported     = "Cafe deleted from database."
	MsgBadLogin     = "Invalid email or password."
)

// ---------- REST 接口：信封格式和状态码保持对外兼容 ----------

func mountAPI(r *gin.Engine, d Deps) {
	type none struct{}

	RegisterAction(r, Action[none, []domain.Cafe]{
		Method: http.MethodGet,
		Path:   "/get_all_cafes",
		Binder: BindNone,
		Key:    "cafes",
		Handler: func(c *gin.Context, _ *none) ([]domain.Cafe, error) {
			cafes, err := d.Cafes.List(c.Request.Context())
			if err != nil {
				return nil, Internal("list cafes failed", err)
			}
			if cafes == nil {
				cafes = []domain.Cafe{}
			}
			return cafes, nil
		},
	})

	type searchQ struct {
		Name string `form:"name"`
	}
	RegisterAction(r, Action[searchQ, *domain.Cafe]{
		Method: http.MethodGet,
		Path:   "/search_cafe",
		Binder: BindQuery,
		Key:    "cafe",
		Handler: func(c *gin.Context, in *searchQ) (*domain.Cafe, error) {
			cafe, err := d.Cafes.SearchByName(c.Request.Context(), in.Name)
			if errors.Is(err, service.ErrCafeNotFound) {
				return nil, NotFound(MsgNoSuchName)
			}
			if err != nil {
				return nil, Internal("search cafe failed", err)
			}
			return cafe, nil
		},
	})

	RegisterAction(r, Action[form.CafeForm, gin.H]{
		Method: http.MethodPost,
		Path:   "/add-api",
		Binder: BindForm,
		Key:    "response",
		Handler: func(c *gin.Context, in *form.CafeForm) (gin.H, error) {
			cafe, err := in.ToCafe()
			if err != nil {
				return nil, BadRequest(form.FieldErrors{form.FormKey: err.Error()})
			}
			err = d.Cafes.Add(c.Request.Context(), cafe)
			if errors.Is(err, service.ErrDuplicateCafe) {
				return nil, Conflict(MsgDuplicate)
			}
			if err != nil {
				return nil, Internal("add cafe failed", err)
			}
			return gin.H{"success": MsgCafeAdded}, nil
		},
	})

	type openQ struct {
		Open string `form:"open" binding:"required"`
	}
	RegisterAction(r, Action[openQ, gin.H]{
		Method: http.MethodPatch,
		Path:   "/update-open/:id",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *openQ) (gin.H, error) {
			return updateHours(c, d, domain.HoursOpen, in.Open, MsgOpenUpdated)
		},
	})

	type closeQ struct {
		Close string `form:"close" binding:"required"`
	}
	RegisterAction(r, Action[closeQ, gin.H]{
		Method: http.MethodPatch,
		Path:   "/update-close/:id",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *closeQ) (gin.H, error) {
			return updateHours(c, d, domain.HoursClose, in.Close, MsgCloseUpdate)
		},
	})

	// 先校验密钥再查 id
	RegisterAction(r, Action[none, gin.H]{
		Method:     http.MethodDelete,
		Path:       "/report-closed/:id",
		Binder:     BindNone,
		Key:        "success",
		Middleware: []gin.HandlerFunc{mdw.APIKeyOrAdmin(d.APIKeys, d.JWT, d.Users)},
		Handler: func(c *gin.Context, _ *none) (gin.H, error) {
			id, err := ParamID(c, "id", MsgNoSuchID)
			if err != nil {
				return nil, err
			}
			err = d.Cafes.Delete(c.Request.Context(), id)
			if errors.Is(err, service.ErrCafeNotFound) {
				return nil, NotFound(MsgNoSuchID)
			}
			if err != nil {
				return nil, Internal("delete cafe failed", err)
			}
			return gin.H{"Success": MsgReported}, nil
		},
	})

	mountTokenActions(r, d)
}

func updateHours(c *gin.Context, d Deps, field domain.HoursField, value, okMsg string) (gin.H, error) {
	id, err := ParamID(c, "id", MsgNoSuchID)
	if err != nil {
		return nil, err
	}
	err = d.Cafes.UpdateHours(c.Request.Context(), id, field, value)
	switch {
	case errors.Is(err, service.ErrCafeNotFound):
		return nil, NotFound(MsgNoSuchID)
	case errors.Is(err, service.ErrEmptyValue):
		return nil, BadRequest(form.FieldErrors{string(field): "This field is required."})
	case errors.Is(err, service.ErrValueTooLong):
		return nil, BadRequest(form.FieldErrors{string(field): MsgHoursTooLong})
	case err != nil:
		return nil, Internal("update hours failed", err)
	}
	return gin.H{"Success": okMsg}, nil
}

// ---------- 动作注册：/api/token（公共） + /api/me（Bearer） ----------

func mountTokenActions(r *gin.Engine, d Deps) {
	RegisterAction(r, Action[form.LoginForm, string]{
		Method: http.MethodPost,
		Path:   "/api/token",
		Binder: BindForm,
		Key:    "token",
		Handler: func(c *gin.Context, in *form.LoginForm) (string, error) {
			u, err := d.Users.Authenticate(c.Request.Context(), in.Email, in.Password)
			if errors.Is(err, service.ErrInvalidCredentials) {
				return "", Unauthorized(MsgBadLogin)
			}
			if err != nil {
				return "", Internal("login failed", err)
			}
			tok, err := d.JWT.Issue(u.ID, string(u.Role))
			if err != nil {
				return "", Internal("issue token failed", err)
			}
			return tok, nil
		},
	})

	type none struct{}
	RegisterAction(r, Action[none, *domain.User]{
		Method:     http.MethodGet,
		Path:       "/api/me",
		Binder:     BindNone,
		Key:        "user",
		Middleware: []gin.HandlerFunc{mdw.AuthJWT(d.JWT, d.Users, "")},
		Handler: func(c *gin.Context, _ *none) (*domain.User, error) {
			uid, err := mdw.ClaimsFrom(c).UserID()
			if err != nil {
				return nil, Unauthorized("Invalid or expired token.")
			}
			u, err := d.Users.Get(c.Request.Context(), uid)
			if errors.Is(err, service.ErrUserNotFound) {
				return nil, NotFound("user not found")
			}
			if err != nil {
				return nil, Internal("load user failed", err)
			}
			return u, nil
		},
	})
}
