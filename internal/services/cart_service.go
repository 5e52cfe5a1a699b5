package services

import (
	"context"
	"fmt"

	"github.com/shubham23mamgain/bringit/domain"
)

// CartServiceImpl implements domain.CartService
type CartServiceImpl struct {
	carts    domain.CartRepository
	products domain.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(carts domain.CartRepository, products domain.ProductRepository) domain.CartService {
	return &CartServiceImpl{carts: carts, products: products}
}

// Save implements domain.CartService. Lines are priced from the catalog and
// the result replaces any cart the user already had.
func (s *CartServiceImpl) Save(ctx context.Context, userID string, items []domain.CartItemInput) (*domain.Cart, error) {
	if len(items) == 0 {
		return nil, &domain.ValidationError{Field: "cart", Reason: "must contain at least one item"}
	}

	ids := make([]string, 0, len(items))
	for i, item := range items {
		if err := domain.ValidateID(item.ProductID); err != nil {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("cart[%d]._id", i), Reason: "not a valid ID"}
		}
		if item.Count <= 0 {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("cart[%d].count", i), Reason: "must be positive"}
		}
		ids = append(ids, item.ProductID)
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(found))
	for _, p := range found {
		prices[p.ID] = p.Price
	}

	cart := &domain.Cart{UserID: userID}
	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			return nil, domain.NewNotFound("Product")
		}
		cart.Products = append(cart.Products, domain.CartItem{
			ProductID: item.ProductID,
			Count:     item.Count,
			Color:     item.Color,
			Price:     price,
		})
		cart.CartTotal += price * float64(item.Count)
	}
	cart.TotalAfterDiscount = cart.CartTotal

	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get implements domain.CartService
func (s *CartServiceImpl) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.FindByUser(ctx, userID)
}

// Empty implements domain.CartService
func (s *CartServiceImpl) Empty(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.DeleteByUser(ctx, userID)
}
