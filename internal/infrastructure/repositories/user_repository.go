package repositories

import (
	"context"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
)

const userRepo = "user_repository"

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                   string  `gorm:"primaryKey;size:36"`
	FirstName            string  `gorm:"size:128"`
	LastName             string  `gorm:"size:128"`
	Email                string  `gorm:"uniqueIndex;size:255;not null"`
	Mobile               *string `gorm:"uniqueIndex;size:32"`
	PasswordHash         string  `gorm:"column:password;not null"`
	Role                 string  `gorm:"index;size:32;not null"`
	IsBlocked            bool    `gorm:"default:false"`
	Address              string
	RefreshToken         string `gorm:"index;size:1024"`
	PasswordChangedAt    *time.Time
	PasswordResetToken   *string `gorm:"index;size:64"`
	PasswordResetExpires *time.Time
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrUserAlreadyExists
		}
		return storeError(userRepo, "create", err)
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "find_by_email", "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "find_by_id", "id = ?", id)
}

// FindByRefreshToken implements domain.UserRepository. The empty string
// means "no session" and never matches.
func (r *UserRepositoryImpl) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.first(ctx, "find_by_refresh_token", "refresh_token = ?", token)
}

// FindByResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	if tokenHash == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.first(ctx, "find_by_reset_token",
		"password_reset_token = ? AND password_reset_expires > ?", tokenHash, now.UTC())
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dbUsers).Error; err != nil {
		return nil, storeError(userRepo, "list", err)
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&DBUser{}).Error
	})
	if err != nil {
		return nil, storeError(userRepo, "delete", err)
	}
	return user, nil
}

// UpdateProfile implements domain.UserRepository; empty fields are left
// untouched
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if update.FirstName != "" {
		fields["first_name"] = update.FirstName
	}
	if update.LastName != "" {
		fields["last_name"] = update.LastName
	}
	if update.Email != "" {
		fields["email"] = update.Email
	}
	if update.Mobile != "" {
		fields["mobile"] = update.Mobile
	}
	return r.updateAndReload(ctx, "update_profile", id, fields)
}

// UpdateAddress implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateAddress(ctx context.Context, id, address string) (*domain.User, error) {
	return r.updateAndReload(ctx, "update_address", id, map[string]any{"address": address})
}

// SetBlocked implements domain.UserRepository
func (r *UserRepositoryImpl) SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error) {
	return r.updateAndReload(ctx, "set_blocked", id, map[string]any{"is_blocked": blocked})
}

// SetRefreshToken implements domain.UserRepository
func (r *UserRepositoryImpl) SetRefreshToken(ctx context.Context, id, token string) error {
	return r.update(ctx, "set_refresh_token", id, map[string]any{"refresh_token": token})
}

// ClearRefreshToken implements domain.UserRepository
func (r *UserRepositoryImpl) ClearRefreshToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("refresh_token = ?", token).
		Update("refresh_token", "")
	if res.Error != nil {
		return false, storeError(userRepo, "clear_refresh_token", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetPassword implements domain.UserRepository
func (r *UserRepositoryImpl) SetPassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	return r.update(ctx, "set_password", id, map[string]any{
		"password":            passwordHash,
		"password_changed_at": changedAt.UTC(),
	})
}

// SetResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	return r.update(ctx, "set_reset_token", id, map[string]any{
		"password_reset_token":   tokenHash,
		"password_reset_expires": expiresAt.UTC(),
	})
}

// ConsumeResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) ConsumeResetToken(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND password_reset_token = ? AND password_reset_expires > ?", id, tokenHash, now.UTC()).
		Updates(map[string]any{
			"password":               passwordHash,
			"password_changed_at":    now.UTC(),
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		})
	if res.Error != nil {
		return false, storeError(userRepo, "consume_reset_token", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ToggleWishlist implements domain.UserRepository. It reports whether the
// product is in the wishlist afterwards.
func (r *UserRepositoryImpl) ToggleWishlist(ctx context.Context, userID, productID string) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&domain.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(&domain.WishlistItem{UserID: userID, ProductID: productID}).Error
	})
	if err != nil {
		return false, storeError(userRepo, "toggle_wishlist", err)
	}
	return added, nil
}

// Wishlist implements domain.UserRepository
func (r *UserRepositoryImpl) Wishlist(ctx context.Context, userID string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at").
		Find(&products).Error
	if err != nil {
		return nil, storeError(userRepo, "wishlist", err)
	}
	return products, nil
}

func (r *UserRepositoryImpl) first(ctx context.Context, op string, query string, args ...any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError(userRepo, op, err)
	}
	return r.dbToDomain(&dbUser), nil
}

func (r *UserRepositoryImpl) update(ctx context.Context, op, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return domain.ErrUserAlreadyExists
		}
		return storeError(userRepo, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) updateAndReload(ctx context.Context, op, id string, fields map[string]any) (*domain.User, error) {
	if err := r.update(ctx, op, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:                   user.ID,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Email:                user.Email,
		PasswordHash:         user.PasswordHash,
		Role:                 string(user.Role),
		IsBlocked:            user.IsBlocked,
		Address:              user.Address,
		RefreshToken:         user.RefreshToken,
		PasswordChangedAt:    user.PasswordChangedAt,
		PasswordResetToken:   user.ResetTokenHash,
		PasswordResetExpires: user.ResetExpiresAt,
	}
	if user.Mobile != "" {
		mobile := user.Mobile
		dbUser.Mobile = &mobile
	}
	return dbUser
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:                dbUser.ID,
		FirstName:         dbUser.FirstName,
		LastName:          dbUser.LastName,
		Email:             dbUser.Email,
		PasswordHash:      dbUser.PasswordHash,
		Role:              domain.Role(dbUser.Role),
		IsBlocked:         dbUser.IsBlocked,
		Address:           dbUser.Address,
		RefreshToken:      dbUser.RefreshToken,
		PasswordChangedAt: dbUser.PasswordChangedAt,
		ResetTokenHash:    dbUser.PasswordResetToken,
		ResetExpiresAt:    dbUser.PasswordResetExpires,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
	if dbUser.Mobile != nil {
		user.Mobile = *dbUser.Mobile
	}
	return user
}
