package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/app"
	"github.com/shubham23mamgain/bringit/internal/config"
	"github.com/shubham23mamgain/bringit/internal/mocks"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type outbox struct {
	mu     sync.Mutex
	emails []string
}

func (o *outbox) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.emails) == 0 {
		return ""
	}
	return o.emails[len(o.emails)-1]
}

type testEnv struct {
	t      *testing.T
	c      *app.Container
	redis  *miniredis.Miniredis
	outbox *outbox
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Port:             "0",
		PublicURL:        "http://shop.test",
		DBDriver:         "sqlite",
		DSN:              filepath.Join(t.TempDir(), "bringit.db"),
		DBLogLevel:       "silent",
		RedisAddr:        mr.Addr(),
		ProductCacheTTL:  time.Minute,
		JWTAccessSecret:  "e2e-access-secret",
		JWTRefreshSecret: "e2e-refresh-secret",
		JWTIssuer:        "bringit",
		AccessTTL:        time.Hour,
		RefreshTTL:       72 * time.Hour,
		ResetTTL:         10 * time.Minute,
		BcryptCost:       4,
	}

	box := &outbox{}
	notifier := mocks.NewMockNotificationService()
	notifier.SendEmailFunc = func(_, _, body string) error {
		box.mu.Lock()
		defer box.mu.Unlock()
		box.emails = append(box.emails, body)
		return nil
	}

	c, err := app.NewContainer(cfg, nil, app.WithNotifier(notifier))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return &testEnv{t: t, c: c, redis: mr, outbox: box}
}

func (e *testEnv) do(method, path string, body any, token string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.c.Handler().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "refreshToken" {
			return ck
		}
	}
	return nil
}

type session struct {
	ID    string `json:"_id"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (e *testEnv) login(path, email, password string) (session, *http.Cookie) {
	e.t.Helper()
	w, env := e.do(http.MethodPost, path, map[string]string{"email": email, "password": password}, "")
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	var s session
	require.NoError(e.t, json.Unmarshal(env.Data, &s))
	return s, refreshCookie(w)
}

var tooLong = strings.Repeat("p", 80)

var resetLinkPattern = regexp.MustCompile(`/api/user/reset-password/([A-Za-z0-9_-]+)`)

func TestCustomerSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	const email = "jane@example.com"

	w, body := env.do(http.MethodPost, "/api/user/register", map[string]string{
		"firstname": "Jane",
		"lastname":  "Doe",
		"email":     email,
		"mobile":    "+15551234567",
		"password":  "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, body.Success)
	assert.NotContains(t, string(body.Data), "secret123")

	w, body = env.do(http.MethodPost, "/api/user/register", map[string]string{
		"firstname": "Jane",
		"lastname":  "Doe",
		"email":     "JANE@example.com",
		"password":  "secret123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, body.Success)

	w, _ = env.do(http.MethodPost, "/api/user/login", map[string]string{"email": email, "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sess, cookie := env.login("/api/user/login", email, "secret123")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "customer", sess.Role)

	w, _ = env.do(http.MethodGet, "/api/user/wishlist", nil, sess.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = env.do(http.MethodPut, "/api/user/password", map[string]string{"password": tooLong}, sess.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: must be at most 72 bytes", body.Message)

	w, body = env.do(http.MethodGet, "/api/user/refresh", nil, "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	w, _ = env.do(http.MethodGet, "/api/user/logout", nil, "", cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = env.do(http.MethodGet, "/api/user/refresh", nil, "", cookie)
	assert.NotEqual(t, http.StatusOK, w.Code, "refresh token must be revoked by logout")

	w, _ = env.do(http.MethodPost, "/api/user/forgot-password-token", map[string]string{"email": email}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	match := resetLinkPattern.FindStringSubmatch(env.outbox.last())
	require.Len(t, match, 2, "reset email should carry a link")
	assert.Contains(t, env.outbox.last(), "http://shop.test/api/user/reset-password/")

	w, body = env.do(http.MethodPut, "/api/user/reset-password/"+match[1], map[string]string{"password": tooLong}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: must be at most 72 bytes", body.Message)

	w, _ = env.do(http.MethodPut, "/api/user/reset-password/"+match[1], map[string]string{"password": "newsecret"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = env.do(http.MethodPut, "/api/user/reset-password/"+match[1], map[string]string{"password": "another1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "reset token is single use")

	w, _ = env.do(http.MethodPost, "/api/user/login", map[string]string{"email": email, "password": "secret123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.login("/api/user/login", email, "newsecret")
}

func TestRegistration(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(http.MethodPost, "/api/user/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, body.Success)

	w, body = env.do(http.MethodPost, "/api/user/register", map[string]string{
		"email":    "mallory@example.com",
		"password": "secret123",
		"role":     "admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "customer", created.Role)

	stored, err := env.c.UserRepo.FindByEmail(context.Background(), "mallory@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, stored.Role)

	w, _ = env.do(http.MethodPost, "/api/user/admin-login", map[string]string{"email": "mallory@example.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = env.do(http.MethodPost, "/api/user/register", map[string]string{
		"email":    "long@example.com",
		"password": tooLong,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password: must be at most 72 bytes", body.Message)

	w, body = env.do(http.MethodPost, "/api/user/register", map[string]string{"password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: is required", body.Message)
}

func TestAdminGateAndProductCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.c.AuthSvc.Register(ctx, domain.RegisterInput{
		FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", Password: "adminpass", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = env.c.AuthSvc.Register(ctx, domain.RegisterInput{
		FirstName: "Carl", LastName: "Customer", Email: "carl@example.com", Password: "customer1",
	})
	require.NoError(t, err)

	w, _ := env.do(http.MethodPost, "/api/user/admin-login", map[string]string{"email": "carl@example.com", "password": "customer1"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	customer, _ := env.login("/api/user/login", "carl@example.com", "customer1")
	admin, _ := env.login("/api/user/admin-login", "admin@example.com", "adminpass")

	product := map[string]any{
		"title":       "Trail Shoe",
		"description": "Lightweight trail runner",
		"price":       89.5,
		"category":    "shoes",
		"brand":       "acme",
		"quantity":    12,
		"color":       "red",
	}

	w, _ = env.do(http.MethodPost, "/api/product", product, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPost, "/api/product", product, customer.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := env.do(http.MethodPost, "/api/product", product, admin.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID   string `json:"_id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "trail-shoe", created.Slug)

	w, _ = env.do(http.MethodGet, "/api/product/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.redis.Exists("product:"+created.ID), "product read should populate the cache")

	w, _ = env.do(http.MethodPut, "/api/product/"+created.ID, map[string]any{"price": 79}, admin.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, env.redis.Exists("product:"+created.ID), "update should invalidate the cache")

	w, body = env.do(http.MethodGet, "/api/product?price[lte]=80&fields=title,price", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Trail Shoe", listed[0]["title"])

	w, _ = env.do(http.MethodGet, "/api/product?page=5&limit=10", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodGet, "/api/user/all-users", nil, customer.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodGet, "/api/user/all-users", nil, admin.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bringit_http_requests_total")
}
