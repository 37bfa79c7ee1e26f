package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "cafe-directory/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（sqlite 单写者，保护 DB）
func ConcurrencyLimit(limit int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(limit)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error(http.StatusServiceUnavailable, "Server busy, please retry."))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
