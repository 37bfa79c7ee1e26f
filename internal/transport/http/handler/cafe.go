package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/form"
	mdw "cafe-directory/internal/transport/http/middleware"
)

// Index GET /
func (h *Web) Index(c *gin.Context) {
	cafes, err := h.cafes.List(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.tmpl", gin.H{"cafes": cafes})
}

// AllCafes GET /all_cafes 明细表
func (h *Web) AllCafes(c *gin.Context) {
	cafes, err := h.cafes.List(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	h.render(c, http.StatusOK, "cafes.tmpl", gin.H{"title": "All cafes", "cafes": cafes})
}

// ShowCafe GET /cafe/:id
func (h *Web) ShowCafe(c *gin.Context) {
	h.showCafe(c, http.StatusOK, form.ReviewForm{}, nil)
}

func (h *Web) showCafe(c *gin.Context, status int, f form.ReviewForm, errs form.FieldErrors) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cafe, err := h.cafes.Get(ctx, id)
	if err != nil {
		h.notFoundOr(c, err, service.ErrCafeNotFound)
		return
	}
	reviews, err := h.reviews.ListForCafe(ctx, id)
	if err != nil {
		h.internal(c, err)
		return
	}
	if errs == nil {
		errs = form.FieldErrors{}
	}
	h.render(c, status, "cafe.tmpl", gin.H{
		"title": cafe.Name, "cafe": cafe, "reviews": reviews, "form": f, "errors": errs,
	})
}

// AddReview POST /cafe/:id
func (h *Web) AddReview(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		h.flashRedirect(c, MsgLoginToComment, "/login")
		return
	}
	var f form.ReviewForm
	if err := c.ShouldBind(&f); err != nil {
		h.showCafe(c, http.StatusBadRequest, f, form.ErrorsOf(err))
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.reviews.Add(c.Request.Context(), u, id, f.Body); err != nil {
		h.notFoundOr(c, err, service.ErrCafeNotFound)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/cafe/%d", id))
}

// AddCafeForm GET /add
func (h *Web) AddCafeForm(c *gin.Context) {
	h.renderAdd(c, http.StatusOK, form.NewCafeForm(), nil)
}

// AddCafe POST /add
func (h *Web) AddCafe(c *gin.Context) {
	var f form.CafeForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderAdd(c, http.StatusBadRequest, f, form.ErrorsOf(err))
		return
	}
	cafe, err := f.ToCafe()
	if err != nil {
		h.renderAdd(c, http.StatusBadRequest, f, form.FieldErrors{form.FormKey: err.Error()})
		return
	}
	if err := h.cafes.Add(c.Request.Context(), cafe); err != nil {
		if errors.Is(err, service.ErrDuplicateCafe) {
			h.renderAdd(c, http.StatusConflict, f, form.FieldErrors{
				form.FormKey: "That cafe is already listed (same name, address or link).",
			})
			return
		}
		h.internal(c, err)
		return
	}
	h.flashRedirect(c, MsgCafeAdded, "/")
}

func (h *Web) renderAdd(c *gin.Context, status int, f form.CafeForm, errs form.FieldErrors) {
	if errs == nil {
		errs = form.FieldErrors{}
	}
	h.render(c, status, "add.tmpl", gin.H{
		"title": "Add a cafe", "form": f.WithDefaults(), "choices": form.Choices, "errors": errs,
	})
}
