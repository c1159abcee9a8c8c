package middleware

import (
	"strings"

	"appointly/internal/auth"
	"appointly/internal/logger"
	"appointly/pkg/apperrors"
	"appointly/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator проверяет access токен вместе с серверной сессией
type Authenticator interface {
	Authenticate(db *gorm.DB, accessToken string) (*auth.Principal, error)
}

// AuthMiddleware - middleware проверки Bearer токена. Требует DBMiddleware раньше в цепочке.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrSessionInvalid)
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			return
		}

		principal, err := authenticator.Authenticate(db.WithContext(c.Request.Context()), tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.UserIDKey, principal.UserID)
		c.Set(contextkeys.RoleKey, principal.Role)
		c.Set(contextkeys.SessionKey, principal.SessionID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), principal.UserID))
		c.Next()
	}
}
