package services

import (
	"testing"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/mocks"
)

// fixedClock returns a clock frozen at t
func fixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           "user-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "test@example.com",
		Mobile:       "+1234567890",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleCustomer,
	}
}

// createAdminUser creates an admin user entity for testing
func createAdminUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = "admin-1"
	user.Email = "admin@example.com"
	user.Role = domain.RoleAdmin
	return user
}
