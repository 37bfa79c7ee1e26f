package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/domain"
)

const KeyUser = "currentUser"

type UserLoader interface {
	Get(ctx context.Context, id uint) (*domain.User, error)
}

// LoadUser 从会话取 user_id 并加载用户；没有或已被删除都按匿名处理
func LoadUser(s *auth.Sessions, users UserLoader, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := s.UserID(c.Request)
		if uid == 0 {
			c.Next()
			return
		}
		u, err := users.Get(c.Request.Context(), uid)
		if err != nil {
			l.Debug("session user not loaded", zap.Uint("uid", uid), zap.Error(err))
			c.Next()
			return
		}
		c.Set(KeyUser, u)
		c.Next()
	}
}

// CurrentUser 匿名返回 nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// RequireRole 当前用户不是该角色时交给 deny 处理（渲染 403）并中断
func RequireRole(role domain.Role, deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := CurrentUser(c); u == nil || u.Role != role {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLogin 匿名用户交给 deny 处理（一般是 flash + 跳转登录）
func RequireLogin(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
