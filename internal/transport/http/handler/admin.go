package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe-directory/internal/service"
	mdw "cafe-directory/internal/transport/http/middleware"
)

// 以下都挂在 RequireRole(admin) 分组下

// DeleteCafe /delete/:id，评论一并删除
func (h *Web) DeleteCafe(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cafes.Delete(c.Request.Context(), id); err != nil {
		h.notFoundOr(c, err, service.ErrCafeNotFound)
		return
	}
	h.log.Info("cafe deleted", zap.Uint("cafe_id", id), zap.Uint("by", mdw.CurrentUser(c).ID))
	h.flashRedirect(c, MsgCafeDeleted, "/all_cafes")
}

// DeleteReview /delete-review/:id，删完回到所属店铺
func (h *Web) DeleteReview(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	rv, err := h.reviews.Delete(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr(c, err, service.ErrReviewNotFound)
		return
	}
	h.flashRedirect(c, MsgReviewDeleted, fmt.Sprintf("/cafe/%d", rv.CafeID))
}

// DeleteUser /delete-user/:id，评论一并删除；不能删自己
func (h *Web) DeleteUser(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	me := mdw.CurrentUser(c)
	if id == me.ID {
		h.flashRedirect(c, MsgNoSelfDelete, "/show-users")
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.notFoundOr(c, err, service.ErrUserNotFound)
		return
	}
	h.log.Info("user deleted", zap.Uint("uid", id), zap.Uint("by", me.ID))
	h.flashRedirect(c, MsgUserDeleted, "/show-users")
}

// ShowUsers /show-users
func (h *Web) ShowUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	h.render(c, http.StatusOK, "users.tmpl", gin.H{"title": "Users", "users": users})
}

// ShowReviews /show-reviews/:user_id
func (h *Web) ShowReviews(c *gin.Context) {
	id, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	author, reviews, err := h.reviews.ListByAuthor(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr(c, err, service.ErrUserNotFound)
		return
	}
	h.render(c, http.StatusOK, "user_reviews.tmpl", gin.H{
		"title": "Reviews by " + author.Name, "author": author, "reviews": reviews,
	})
}
