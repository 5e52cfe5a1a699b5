package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email, mobile string) *domain.User {
	return &domain.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		Mobile:       mobile,
		PasswordHash: "hashed_password",
		Role:         domain.RoleCustomer,
	}
}

func TestUserRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		existing      []*domain.User
		user          *domain.User
		expectedError error
	}{
		{
			name: "creates user and assigns id",
			user: newTestUser("ada@example.com", "+100"),
		},
		{
			name:          "duplicate email",
			existing:      []*domain.User{newTestUser("ada@example.com", "+100")},
			user:          newTestUser("ada@example.com", "+200"),
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:          "duplicate mobile",
			existing:      []*domain.User{newTestUser("ada@example.com", "+100")},
			user:          newTestUser("other@example.com", "+100"),
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:     "users without mobile do not collide",
			existing: []*domain.User{newTestUser("ada@example.com", "")},
			user:     newTestUser("other@example.com", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))
			ctx := context.Background()
			for _, u := range tt.existing {
				require.NoError(t, repo.Create(ctx, u))
			}

			err := repo.Create(ctx, tt.user)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tt.user.ID)
			assert.False(t, tt.user.CreatedAt.IsZero())

			found, err := repo.FindByEmail(ctx, tt.user.Email)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, found.ID)
			assert.Equal(t, tt.user.Mobile, found.Mobile)
			assert.Equal(t, domain.RoleCustomer, found.Role)
		})
	}
}

func TestUserRepositoryImpl_FindNotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, domain.NewID())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByRefreshToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByResetToken(ctx, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_RefreshToken(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := newTestUser("ada@example.com", "")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, "refresh-1"))
	found, err := repo.FindByRefreshToken(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// a new session replaces the old one
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, "refresh-2"))
	_, err = repo.FindByRefreshToken(ctx, "refresh-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	cleared, err := repo.ClearRefreshToken(ctx, "refresh-2")
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = repo.ClearRefreshToken(ctx, "refresh-2")
	require.NoError(t, err)
	assert.False(t, cleared)

	cleared, err = repo.ClearRefreshToken(ctx, "")
	require.NoError(t, err)
	assert.False(t, cleared)

	assert.ErrorIs(t, repo.SetRefreshToken(ctx, domain.NewID(), "x"), domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_ResetToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		expiresAt    time.Time
		lookupHash   string
		at           time.Time
		wantConsumed bool
	}{
		{"valid token", now.Add(10 * time.Minute), "hash-1", now, true},
		{"wrong hash", now.Add(10 * time.Minute), "hash-2", now, false},
		{"expired", now.Add(10 * time.Minute), "hash-1", now.Add(11 * time.Minute), false},
		{"expiry is exclusive", now.Add(10 * time.Minute), "hash-1", now.Add(10 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))
			ctx := context.Background()
			user := newTestUser("ada@example.com", "")
			require.NoError(t, repo.Create(ctx, user))
			require.NoError(t, repo.SetResetToken(ctx, user.ID, "hash-1", tt.expiresAt))

			found, err := repo.FindByResetToken(ctx, tt.lookupHash, tt.at)
			if !tt.wantConsumed {
				assert.ErrorIs(t, err, domain.ErrUserNotFound)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, found.ID)
			}

			ok, err := repo.ConsumeResetToken(ctx, user.ID, tt.lookupHash, "new_hash", tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConsumed, ok)

			after, err := repo.FindByID(ctx, user.ID)
			require.NoError(t, err)
			if tt.wantConsumed {
				assert.Equal(t, "new_hash", after.PasswordHash)
				assert.Nil(t, after.ResetTokenHash)
				assert.Nil(t, after.ResetExpiresAt)
				require.NotNil(t, after.PasswordChangedAt)
				assert.True(t, tt.at.Equal(*after.PasswordChangedAt))

				// single use
				again, err := repo.ConsumeResetToken(ctx, user.ID, tt.lookupHash, "other", tt.at)
				require.NoError(t, err)
				assert.False(t, again)
			} else {
				assert.Equal(t, "hashed_password", after.PasswordHash)
				require.NotNil(t, after.ResetTokenHash)
			}
		})
	}
}

func TestUserRepositoryImpl_Updates(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := newTestUser("ada@example.com", "+100")
	other := newTestUser("grace@example.com", "+200")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Create(ctx, other))

	updated, err := repo.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{FirstName: "Augusta"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "ada@example.com", updated.Email)

	_, err = repo.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Email: "grace@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	updated, err = repo.UpdateAddress(ctx, user.ID, "12 St James's Square")
	require.NoError(t, err)
	assert.Equal(t, "12 St James's Square", updated.Address)

	updated, err = repo.SetBlocked(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)

	updated, err = repo.SetBlocked(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsBlocked)

	_, err = repo.SetBlocked(ctx, domain.NewID(), true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	changedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.SetPassword(ctx, user.ID, "rehashed", changedAt))
	after, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rehashed", after.PasswordHash)
	require.NotNil(t, after.PasswordChangedAt)
	assert.True(t, changedAt.Equal(*after.PasswordChangedAt))
}

func TestUserRepositoryImpl_ListAndDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := newTestUser("ada@example.com", "")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Create(ctx, newTestUser("grace@example.com", "")))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, deleted.Email)

	_, err = repo.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepositoryImpl_Wishlist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	user := newTestUser("ada@example.com", "")
	require.NoError(t, repo.Create(ctx, user))
	p := &domain.Product{Title: "Lamp", Slug: "lamp", Description: "d", Price: 10, Category: "c", Brand: "b", Quantity: 1, Color: "red"}
	require.NoError(t, products.Create(ctx, p))

	added, err := repo.ToggleWishlist(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, added)

	list, err := repo.Wishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	added, err = repo.ToggleWishlist(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, added)

	list, err = repo.Wishlist(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
