package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cafe-directory/internal/domain"
	"cafe-directory/internal/transport/http/handler"
	mdw "cafe-directory/internal/transport/http/middleware"
)

// mountAdmin 管理端页面统一要求 admin 角色；删除类链接 GET/POST 都接受
func mountAdmin(r *gin.Engine, web *handler.Web) {
	admin := r.Group("", mdw.RequireRole(domain.RoleAdmin, web.Forbidden))

	for _, m := range []string{http.MethodGet, http.MethodPost} {
		admin.Handle(m, "/delete/:id", web.DeleteCafe)
		admin.Handle(m, "/delete-review/:id", web.DeleteReview)
		admin.Handle(m, "/delete-user/:id", web.DeleteUser)
	}
	admin.GET("/show-users", web.ShowUsers)
	admin.GET("/show-reviews/:user_id", web.ShowReviews)
}
