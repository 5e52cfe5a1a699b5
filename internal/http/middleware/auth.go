package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// AuthMW wraps the token service and user repository for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	users    domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, users domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		users:    users,
	}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.users)
}
