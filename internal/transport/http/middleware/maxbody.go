package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "cafe-directory/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；表单都很小，1MB 足够
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var mbe *http.MaxBytesError
			if errors.As(e.Err, &mbe) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
					resp.Error(http.StatusRequestEntityTooLarge, "Request body too large."))
				return
			}
		}
	}
}
