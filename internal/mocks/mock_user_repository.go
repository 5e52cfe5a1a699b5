package mocks

import (
	"context"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *domain.User) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc           func(ctx context.Context, id string) (*domain.User, error)
	FindByRefreshTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	FindByResetTokenFunc   func(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	ListFunc               func(ctx context.Context) ([]domain.User, error)
	DeleteFunc             func(ctx context.Context, id string) (*domain.User, error)
	UpdateProfileFunc      func(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	UpdateAddressFunc      func(ctx context.Context, id, address string) (*domain.User, error)
	SetBlockedFunc         func(ctx context.Context, id string, blocked bool) (*domain.User, error)
	SetRefreshTokenFunc    func(ctx context.Context, id, token string) error
	ClearRefreshTokenFunc  func(ctx context.Context, token string) (bool, error)
	SetPasswordFunc        func(ctx context.Context, id, passwordHash string, changedAt time.Time) error
	SetResetTokenFunc      func(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ConsumeResetTokenFunc  func(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) (bool, error)
	ToggleWishlistFunc     func(ctx context.Context, userID, productID string) (bool, error)
	WishlistFunc           func(ctx context.Context, userID string) ([]domain.Product, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// FindByRefreshToken finds the user holding a refresh token
func (m *MockUserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByRefreshTokenFunc != nil {
		return m.FindByRefreshTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

// FindByResetToken finds the user holding an unexpired reset token hash
func (m *MockUserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, tokenHash, now)
	}
	return nil, domain.ErrUserNotFound
}

// List returns all users
func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.User{}, nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// UpdateProfile updates profile fields
func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, update)
	}
	return nil, domain.ErrUserNotFound
}

// UpdateAddress updates the address
func (m *MockUserRepository) UpdateAddress(ctx context.Context, id, address string) (*domain.User, error) {
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(ctx, id, address)
	}
	return nil, domain.ErrUserNotFound
}

// SetBlocked blocks or unblocks a user
func (m *MockUserRepository) SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error) {
	if m.SetBlockedFunc != nil {
		return m.SetBlockedFunc(ctx, id, blocked)
	}
	return nil, domain.ErrUserNotFound
}

// SetRefreshToken stores the user's refresh token
func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	if m.SetRefreshTokenFunc != nil {
		return m.SetRefreshTokenFunc(ctx, id, token)
	}
	// Default behavior: success
	return nil
}

// ClearRefreshToken empties the refresh token matching token
func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, token string) (bool, error) {
	if m.ClearRefreshTokenFunc != nil {
		return m.ClearRefreshTokenFunc(ctx, token)
	}
	return false, nil
}

// SetPassword stores a new password hash
func (m *MockUserRepository) SetPassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	if m.SetPasswordFunc != nil {
		return m.SetPasswordFunc(ctx, id, passwordHash, changedAt)
	}
	return nil
}

// SetResetToken stores a reset token hash and expiry
func (m *MockUserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, tokenHash, expiresAt)
	}
	return nil
}

// ConsumeResetToken swaps the password for a valid reset token
func (m *MockUserRepository) ConsumeResetToken(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) (bool, error) {
	if m.ConsumeResetTokenFunc != nil {
		return m.ConsumeResetTokenFunc(ctx, id, tokenHash, passwordHash, now)
	}
	return true, nil
}

// ToggleWishlist adds or removes a product from the wishlist
func (m *MockUserRepository) ToggleWishlist(ctx context.Context, userID, productID string) (bool, error) {
	if m.ToggleWishlistFunc != nil {
		return m.ToggleWishlistFunc(ctx, userID, productID)
	}
	return true, nil
}

// Wishlist returns the user's saved products
func (m *MockUserRepository) Wishlist(ctx context.Context, userID string) ([]domain.Product, error) {
	if m.WishlistFunc != nil {
		return m.WishlistFunc(ctx, userID)
	}
	return []domain.Product{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
