package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/http/handlers"
)

// Context keys set by AuthMiddleware
const (
	ContextUser     = "user"
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// AuthMiddleware authenticates the bearer access token and attaches the
// subject user to the context
func AuthMiddleware(tokenSvc domain.TokenService, users domain.UserRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			handlers.WriteError(c, domain.ErrMissingToken)
			return
		}

		claims, err := tokenSvc.VerifyAccess(token)
		if err != nil {
			handlers.WriteError(c, domain.ErrTokenInvalid)
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				handlers.WriteError(c, domain.ErrAuthUserNotFound)
				return
			}
			handlers.WriteError(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))

		c.Next()
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
