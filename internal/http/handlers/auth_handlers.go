package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// CookieConfig controls the refresh token cookie
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	resetSvc domain.PasswordResetService
	cookie   CookieConfig
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, resetSvc domain.PasswordResetService, cookie CookieConfig) *AuthHandlers {
	if cookie.Name == "" {
		cookie.Name = "refreshToken"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 72 * time.Hour
	}
	return &AuthHandlers{authSvc: authSvc, resetSvc: resetSvc, cookie: cookie}
}

// RegisterRequest represents registration request. Self-registered
// accounts are always customers; admins come from the create-admin command.
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordRequest carries a new password
type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest carries the account email
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
		Role:      domain.RoleCustomer,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "User created successfully", user.Public())
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	h.login(c, h.authSvc.Login)
}

// AdminLogin handles admin login
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	h.login(c, h.authSvc.LoginAdmin)
}

type loginFunc func(ctx context.Context, email, password string) (*domain.AuthResult, error)

func (h *AuthHandlers) login(c *gin.Context, login loginFunc) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	u := result.User
	Respond(c, http.StatusOK, "Login successful", gin.H{
		"_id":       u.ID,
		"firstname": u.FirstName,
		"lastname":  u.LastName,
		"mobile":    u.Mobile,
		"email":     u.Email,
		"role":      u.Role,
		"token":     result.AccessToken,
	})
}

// Refresh mints a new access token from the refresh cookie
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	accessToken, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Access token refreshed", gin.H{"accessToken": accessToken})
}

// Logout ends the session; it answers 204 even when there was none
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// ForgotPassword emails a one-time reset link
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetSvc.RequestReset(c.Request.Context(), req.Email); err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Password reset link sent to your email", nil)
}

// ResetPassword consumes a reset token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req PasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.resetSvc.CompleteReset(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Password reset successfully", user.Public())
}

// UpdatePassword changes the authenticated user's password
func (h *AuthHandlers) UpdatePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req PasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.authSvc.ChangePassword(c.Request.Context(), user.ID, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Password updated successfully", updated.Public())
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
