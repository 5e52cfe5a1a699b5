package mocks

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockPasswordResetService implements domain.PasswordResetService for testing
type MockPasswordResetService struct {
	RequestResetFunc  func(ctx context.Context, email string) error
	CompleteResetFunc func(ctx context.Context, token, password string) (*domain.User, error)
}

// NewMockPasswordResetService creates a new MockPasswordResetService
func NewMockPasswordResetService() *MockPasswordResetService {
	return &MockPasswordResetService{}
}

// RequestReset starts a password reset
func (m *MockPasswordResetService) RequestReset(ctx context.Context, email string) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, email)
	}
	return nil
}

// CompleteReset finishes a password reset
func (m *MockPasswordResetService) CompleteReset(ctx context.Context, token, password string) (*domain.User, error) {
	if m.CompleteResetFunc != nil {
		return m.CompleteResetFunc(ctx, token, password)
	}
	return nil, domain.ErrResetTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.PasswordResetService = (*MockPasswordResetService)(nil)
