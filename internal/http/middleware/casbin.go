package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/http/handlers"
	"github.com/shubham23mamgain/bringit/internal/services"
)

// AuthzMW gates routes on the casbin policy for the caller's role
type AuthzMW struct {
	policies domain.PolicyService
}

// NewAuthzMW creates new authorization middleware wrapper
func NewAuthzMW(policies domain.PolicyService) *AuthzMW {
	return &AuthzMW{policies: policies}
}

// RequireAdmin must run after AuthMW.WithJWT. With the default policy only
// role_admin may pass.
func (mw *AuthzMW) RequireAdmin() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			handlers.WriteError(c, domain.ErrMissingToken)
			return
		}

		allowed, err := mw.policies.CheckPermission(services.RoleSubject(domain.Role(role)), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			handlers.WriteError(c, err)
			return
		}
		if !allowed {
			handlers.WriteError(c, domain.ErrNotAuthorized)
			return
		}

		c.Next()
	})
}
