package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func performRequest(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// withUser stands in for the auth middleware
func withUser(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", string(user.Role))
		c.Next()
	}
}

func newAuthRouter(authSvc *mocks.MockAuthService, resetSvc *mocks.MockPasswordResetService, user *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc, resetSvc, CookieConfig{Secure: true})
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/admin-login", h.AdminLogin)
	r.GET("/refresh", h.Refresh)
	r.GET("/logout", h.Logout)
	r.POST("/forgot-password-token", h.ForgotPassword)
	r.PUT("/reset-password/:token", h.ResetPassword)
	if user != nil {
		r.PUT("/password", withUser(user), h.UpdatePassword)
	} else {
		r.PUT("/password", h.UpdatePassword)
	}
	return r
}

func sessionResult(role domain.Role) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:        "user-1",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Mobile:    "5550001",
			Role:      role,
		},
		AccessToken:  "access_user-1",
		RefreshToken: "refresh_user-1",
	}
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "refreshToken" {
			return ck
		}
	}
	return nil
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		registerErr    error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "creates customer",
			body:           map[string]any{"firstname": "Ada", "lastname": "Lovelace", "email": "ada@example.com", "password": "secret123"},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User created successfully",
		},
		{
			name:           "missing email is rejected",
			body:           map[string]any{"firstname": "Ada", "lastname": "Lovelace", "password": "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "email: is required",
		},
		{
			name:           "email and password are enough",
			body:           map[string]any{"email": "a@x.com", "password": "secret123"},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User created successfully",
		},
		{
			name:           "short password names the field",
			body:           map[string]any{"email": "a@x.com", "password": "abc"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "password: must be at least 6 characters",
		},
		{
			name:           "malformed email names the field",
			body:           map[string]any{"email": "not-an-email", "password": "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "email: must be a valid email address",
		},
		{
			name:           "duplicate email is a conflict",
			body:           map[string]any{"firstname": "Ada", "lastname": "Lovelace", "email": "ada@example.com", "password": "secret123"},
			registerErr:    domain.ErrUserAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedMsg:    "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.registerErr != nil {
				authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
					return nil, tt.registerErr
				}
			}
			r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

			w := performRequest(r, http.MethodPost, "/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedStatus < 300, env.Success)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, env.Message)
			}
			assert.NotContains(t, w.Body.String(), "secret123")
		})
	}
}

func TestAuthHandlers_RegisterIgnoresRole(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var got domain.RegisterInput
	authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
		got = input
		return &domain.User{ID: "user-1", Email: input.Email, Role: input.Role}, nil
	}
	r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

	w := performRequest(r, http.MethodPost, "/register", map[string]any{
		"email": "mallory@example.com", "password": "secret123", "role": "admin",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.RoleCustomer, got.Role)
	assert.Contains(t, w.Body.String(), `"role":"customer"`)
}

func TestAuthHandlers_MalformedBody(t *testing.T) {
	r := newAuthRouter(mocks.NewMockAuthService(), mocks.NewMockPasswordResetService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "body: must be valid JSON", env.Message)
	assert.NotContains(t, w.Body.String(), "RegisterRequest")
}

func TestAuthHandlers_Login(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		if email == "ada@example.com" && password == "secret123" {
			return sessionResult(domain.RoleCustomer), nil
		}
		return nil, domain.ErrInvalidCredentials
	}
	r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

	t.Run("success sets refresh cookie", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/login", LoginRequest{Email: "ada@example.com", Password: "secret123"})
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "user-1", data["_id"])
		assert.Equal(t, "access_user-1", data["token"])
		assert.Equal(t, "customer", data["role"])
		assert.NotContains(t, data, "refreshToken")

		ck := refreshCookie(w)
		require.NotNil(t, ck)
		assert.Equal(t, "refresh_user-1", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.True(t, ck.Secure)
		assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
		assert.Equal(t, 72*3600, ck.MaxAge)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/login", LoginRequest{Email: "ada@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid Credentials", decodeEnvelope(t, w).Message)
		assert.Nil(t, refreshCookie(w))
	})

	t.Run("blocked user", func(t *testing.T) {
		blocked := mocks.NewMockAuthService()
		blocked.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
			return nil, domain.ErrUserBlocked
		}
		w := performRequest(newAuthRouter(blocked, mocks.NewMockPasswordResetService(), nil),
			http.MethodPost, "/login", LoginRequest{Email: "ada@example.com", Password: "secret123"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandlers_AdminLogin(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginAdminFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		if email == "admin@example.com" {
			return sessionResult(domain.RoleAdmin), nil
		}
		return nil, domain.ErrNotAuthorized
	}
	r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

	w := performRequest(r, http.MethodPost, "/admin-login", LoginRequest{Email: "admin@example.com", Password: "x"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, refreshCookie(w))

	w = performRequest(r, http.MethodPost, "/admin-login", LoginRequest{Email: "ada@example.com", Password: "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not Authorized", decodeEnvelope(t, w).Message)
}

func TestAuthHandlers_Refresh(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RefreshFunc = func(ctx context.Context, token string) (string, error) {
		switch token {
		case "":
			return "", domain.ErrMissingToken
		case "refresh_user-1":
			return "access_user-1", nil
		default:
			return "", domain.ErrTokenNotRecognized
		}
	}
	r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

	w := performRequest(r, http.MethodGet, "/refresh", nil, &http.Cookie{Name: "refreshToken", Value: "refresh_user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "access_user-1", data["accessToken"])

	w = performRequest(r, http.MethodGet, "/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodGet, "/refresh", nil, &http.Cookie{Name: "refreshToken", Value: "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No Refresh Token present in db or not matched", decodeEnvelope(t, w).Message)
}

func TestAuthHandlers_Logout(t *testing.T) {
	var got []string
	authSvc := mocks.NewMockAuthService()
	authSvc.LogoutFunc = func(ctx context.Context, token string) error {
		got = append(got, token)
		return nil
	}
	r := newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil)

	w := performRequest(r, http.MethodGet, "/logout", nil, &http.Cookie{Name: "refreshToken", Value: "refresh_user-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	ck := refreshCookie(w)
	require.NotNil(t, ck)
	assert.Equal(t, "", ck.Value)
	assert.True(t, ck.MaxAge < 0)

	// no cookie still succeeds
	w = performRequest(r, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"refresh_user-1", ""}, got)
}

func TestAuthHandlers_PasswordReset(t *testing.T) {
	resetSvc := mocks.NewMockPasswordResetService()
	resetSvc.RequestResetFunc = func(ctx context.Context, email string) error {
		if email == "ada@example.com" {
			return nil
		}
		return domain.NewNotFound("User")
	}
	resetSvc.CompleteResetFunc = func(ctx context.Context, token, password string) (*domain.User, error) {
		if token == "good" {
			return &domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: "hashed_" + password}, nil
		}
		return nil, domain.ErrResetTokenInvalid
	}
	r := newAuthRouter(mocks.NewMockAuthService(), resetSvc, nil)

	w := performRequest(r, http.MethodPost, "/forgot-password-token", ForgotPasswordRequest{Email: "ada@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodPost, "/forgot-password-token", ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User with Given ID not found", decodeEnvelope(t, w).Message)

	w = performRequest(r, http.MethodPut, "/reset-password/good", PasswordRequest{Password: "newsecret"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "hashed_"))

	w = performRequest(r, http.MethodPut, "/reset-password/bad", PasswordRequest{Password: "newsecret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Token Expired, Please try again later", decodeEnvelope(t, w).Message)
}

func TestAuthHandlers_UpdatePassword(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleCustomer}
	authSvc := mocks.NewMockAuthService()
	authSvc.ChangePasswordFunc = func(ctx context.Context, userID, password string) (*domain.User, error) {
		assert.Equal(t, "user-1", userID)
		return user, nil
	}

	w := performRequest(newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), user),
		http.MethodPut, "/password", PasswordRequest{Password: "newsecret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(newAuthRouter(authSvc, mocks.NewMockPasswordResetService(), nil),
		http.MethodPut, "/password", PasswordRequest{Password: "newsecret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
