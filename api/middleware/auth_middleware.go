package middleware

import (
	"net/http"
	"strings"

	"github.com/asakaze/photo-vault/api/common"
	"github.com/asakaze/photo-vault/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey holds the authenticated caller's user id; every
	// handler behind AuthRequired scopes its queries by it.
	ContextUserIDKey = "user_id"
)

// AuthRequired 校验 Bearer JWT 并将认证后的用户ID写入请求上下文
func AuthRequired(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		userID, err := jwtService.ParseToken(parts[1])
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
