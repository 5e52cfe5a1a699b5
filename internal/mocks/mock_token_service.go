package mocks

import (
	"strings"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueAccessFunc   func(userID string) (string, error)
	IssueRefreshFunc  func(userID string) (string, error)
	VerifyAccessFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccess issues an access token for the user
func (m *MockTokenService) IssueAccess(userID string) (string, error) {
	if m.IssueAccessFunc != nil {
		return m.IssueAccessFunc(userID)
	}
	// Default behavior: return a mock access token
	return "access_" + userID, nil
}

// IssueRefresh issues a refresh token for the user
func (m *MockTokenService) IssueRefresh(userID string) (string, error) {
	if m.IssueRefreshFunc != nil {
		return m.IssueRefreshFunc(userID)
	}
	return "refresh_" + userID, nil
}

// VerifyAccess verifies an access token and returns claims
func (m *MockTokenService) VerifyAccess(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	// Default behavior: accept tokens produced by IssueAccess
	return mockClaims(token, "access_", 24*time.Hour)
}

// VerifyRefresh verifies a refresh token and returns claims
func (m *MockTokenService) VerifyRefresh(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return mockClaims(token, "refresh_", 72*time.Hour)
}

func mockClaims(token, prefix string, ttl time.Duration) (*domain.TokenClaims, error) {
	userID, ok := strings.CutPrefix(token, prefix)
	if !ok || userID == "" {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now()
	return &domain.TokenClaims{UserID: userID, IssuedAt: now, ExpiresAt: now.Add(ttl)}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
