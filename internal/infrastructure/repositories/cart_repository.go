package repositories

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
)

const cartRepo = "cart_repository"

// CartRepositoryImpl implements domain.CartRepository
type CartRepositoryImpl struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &CartRepositoryImpl{db: db}
}

// Replace implements domain.CartRepository
func (r *CartRepositoryImpl) Replace(ctx context.Context, cart *domain.Cart) error {
	cart.AssignID(domain.NewID())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCart(tx, cart.UserID); err != nil {
			return err
		}
		return tx.Create(cart).Error
	})
	if err != nil {
		return storeError(cartRepo, "replace", err)
	}
	return nil
}

// FindByUser implements domain.CartRepository
func (r *CartRepositoryImpl) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("Cart")
		}
		return nil, storeError(cartRepo, "find_by_user", err)
	}
	return &cart, nil
}

// DeleteByUser implements domain.CartRepository and returns the removed cart
func (r *CartRepositoryImpl) DeleteByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCart(tx, userID)
	}); err != nil {
		return nil, storeError(cartRepo, "delete_by_user", err)
	}
	return cart, nil
}

// deleteCart removes the user's cart and its lines
func deleteCart(tx *gorm.DB, userID string) error {
	var ids []string
	if err := tx.Model(&domain.Cart{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("cart_id IN ?", ids).Delete(&domain.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&domain.Cart{}).Error
}
