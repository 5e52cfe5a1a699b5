package mocks

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginAdminFunc     func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (string, error)
	LogoutFunc         func(ctx context.Context, refreshToken string) error
	ChangePasswordFunc func(ctx context.Context, userID, password string) (*domain.User, error)
	GetUserProfileFunc func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	// Default behavior: echo the input back as a customer
	return &domain.User{
		ID:        "user-1",
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Mobile:    input.Mobile,
		Role:      domain.RoleCustomer,
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// LoginAdmin authenticates an admin
func (m *MockAuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginAdminFunc != nil {
		return m.LoginAdminFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// Refresh mints a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "", domain.ErrTokenNotRecognized
}

// Logout ends the session
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

// ChangePassword sets a new password
func (m *MockAuthService) ChangePassword(ctx context.Context, userID, password string) (*domain.User, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, password)
	}
	return &domain.User{ID: userID}, nil
}

// GetUserProfile gets user profile by ID
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
