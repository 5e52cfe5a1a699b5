package mocks

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockProductService implements domain.ProductService for testing
type MockProductService struct {
	CreateFunc func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Product, error)
	QueryFunc  func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	UpdateFunc func(ctx context.Context, id string, fields map[string]any) (*domain.Product, error)
	DeleteFunc func(ctx context.Context, id string) (*domain.Product, error)
}

// NewMockProductService creates a new MockProductService
func NewMockProductService() *MockProductService {
	return &MockProductService{}
}

// Create stores a product
func (m *MockProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	// Default behavior: echo back with a fresh id
	product.AssignID(domain.NewID())
	return product, nil
}

// Get loads a product
func (m *MockProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.NewNotFound("Product")
}

// Query lists products
func (m *MockProductService) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return nil, domain.ErrNoProducts
}

// Update changes a product
func (m *MockProductService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil, domain.NewNotFound("Product")
}

// Delete removes a product
func (m *MockProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.NewNotFound("Product")
}

// MockBlogService implements domain.BlogService for testing
type MockBlogService struct {
	ListFunc    func(ctx context.Context) ([]domain.Blog, error)
	GetFunc     func(ctx context.Context, id string) (*domain.Blog, error)
	LikeFunc    func(ctx context.Context, blogID, userID string) (*domain.Blog, error)
	DislikeFunc func(ctx context.Context, blogID, userID string) (*domain.Blog, error)
}

// NewMockBlogService creates a new MockBlogService
func NewMockBlogService() *MockBlogService {
	return &MockBlogService{}
}

// List returns all blogs
func (m *MockBlogService) List(ctx context.Context) ([]domain.Blog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Blog{}, nil
}

// Get loads a blog and counts the view
func (m *MockBlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.NewNotFound("Blog")
}

// Like toggles a like
func (m *MockBlogService) Like(ctx context.Context, blogID, userID string) (*domain.Blog, error) {
	if m.LikeFunc != nil {
		return m.LikeFunc(ctx, blogID, userID)
	}
	return nil, domain.NewNotFound("Blog")
}

// Dislike toggles a dislike
func (m *MockBlogService) Dislike(ctx context.Context, blogID, userID string) (*domain.Blog, error) {
	if m.DislikeFunc != nil {
		return m.DislikeFunc(ctx, blogID, userID)
	}
	return nil, domain.NewNotFound("Blog")
}

// MockCartService implements domain.CartService for testing
type MockCartService struct {
	SaveFunc  func(ctx context.Context, userID string, items []domain.CartItemInput) (*domain.Cart, error)
	GetFunc   func(ctx context.Context, userID string) (*domain.Cart, error)
	EmptyFunc func(ctx context.Context, userID string) (*domain.Cart, error)
}

// NewMockCartService creates a new MockCartService
func NewMockCartService() *MockCartService {
	return &MockCartService{}
}

// Save replaces the user's cart
func (m *MockCartService) Save(ctx context.Context, userID string, items []domain.CartItemInput) (*domain.Cart, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, items)
	}
	return &domain.Cart{ID: domain.NewID(), UserID: userID}, nil
}

// Get loads the user's cart
func (m *MockCartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, domain.NewNotFound("Cart")
}

// Empty deletes the user's cart
func (m *MockCartService) Empty(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.EmptyFunc != nil {
		return m.EmptyFunc(ctx, userID)
	}
	return nil, domain.NewNotFound("Cart")
}

// Compile-time interface compliance verification
var (
	_ domain.ProductService = (*MockProductService)(nil)
	_ domain.BlogService    = (*MockBlogService)(nil)
	_ domain.CartService    = (*MockCartService)(nil)
)
