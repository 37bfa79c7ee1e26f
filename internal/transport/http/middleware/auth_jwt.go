package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/domain"
	resp "cafe-directory/internal/transport/http/response"
)

const KeyClaims = "claims"

// bearerClaims 解析 Authorization: Bearer，没有或无效返回 nil
func bearerClaims(c *gin.Context, j *auth.JWTer) *auth.Claims {
	ah := c.GetHeader("Authorization")
	if j == nil || !strings.HasPrefix(ah, "Bearer ") {
		return nil
	}
	claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
	if err != nil {
		return nil
	}
	return claims
}

// bearerUser token 里只信 uid，角色以库里当前的用户为准；用户已删除返回 nil
func bearerUser(c *gin.Context, claims *auth.Claims, users UserLoader) *domain.User {
	uid, err := claims.UserID()
	if err != nil {
		return nil
	}
	u, err := users.Get(c.Request.Context(), uid)
	if err != nil {
		return nil
	}
	return u
}

// AuthJWT REST 接口的 Bearer 校验；requireRole 为空表示只要登录
func AuthJWT(j *auth.JWTer, users UserLoader, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "Missing bearer token."))
			return
		}
		claims := bearerClaims(c, j)
		var u *domain.User
		if claims != nil {
			u = bearerUser(c, claims, users)
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "Invalid or expired token."))
			return
		}
		if requireRole != "" && u.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(http.StatusForbidden, "Sorry, that's not allowed."))
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// APIKeyMsg report-closed 的 403 文案
const APIKeyMsg = "Sorry, that's not allowed. Make sure you have the correct api_key."

// APIKeyOrAdmin ?api_key= 命中配置里任一密钥，或 Bearer token 对应的用户当前仍是管理员，才放行。
// 必须先于 id 查找执行：密钥错误时不泄露 id 是否存在。
func APIKeyOrAdmin(keys []string, j *auth.JWTer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if matchKey(keys, c.Query("api_key")) {
			c.Next()
			return
		}
		if claims := bearerClaims(c, j); claims != nil {
			if u := bearerUser(c, claims, users); u.IsAdmin() {
				c.Set(KeyClaims, claims)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(http.StatusForbidden, APIKeyMsg))
	}
}

// matchKey 逐个常量时间比较，不提前退出
func matchKey(keys []string, got string) bool {
	if got == "" {
		return false
	}
	ok := 0
	for _, k := range keys {
		ok |= subtle.ConstantTimeCompare([]byte(k), []byte(got))
	}
	return ok == 1
}
