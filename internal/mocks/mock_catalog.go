package mocks

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
)

// MockCatalogRepository implements domain.CatalogRepository for testing
type MockCatalogRepository[T any] struct {
	CreateFunc   func(ctx context.Context, entity *T) error
	FindByIDFunc func(ctx context.Context, id string) (*T, error)
	ListFunc     func(ctx context.Context) ([]T, error)
	UpdateFunc   func(ctx context.Context, id string, fields map[string]any) (*T, error)
	DeleteFunc   func(ctx context.Context, id string) (*T, error)
}

// Create stores an entity
func (m *MockCatalogRepository[T]) Create(ctx context.Context, entity *T) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entity)
	}
	return nil
}

// FindByID loads an entity
func (m *MockCatalogRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// List loads all entities
func (m *MockCatalogRepository[T]) List(ctx context.Context) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []T{}, nil
}

// Update changes an entity
func (m *MockCatalogRepository[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil, domain.ErrNotFound
}

// Delete removes an entity
func (m *MockCatalogRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// MockProductRepository implements domain.ProductRepository for testing
type MockProductRepository struct {
	MockCatalogRepository[domain.Product]
	QueryFunc     func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	CountFunc     func(ctx context.Context, filters []domain.Filter) (int64, error)
	FindByIDsFunc func(ctx context.Context, ids []string) ([]domain.Product, error)
}

// NewMockProductRepository creates a new MockProductRepository
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

// Query runs a product query
func (m *MockProductRepository) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return []domain.Product{}, nil
}

// Count counts matching products
func (m *MockProductRepository) Count(ctx context.Context, filters []domain.Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filters)
	}
	return 0, nil
}

// FindByIDs loads several products
func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return []domain.Product{}, nil
}

// MockBlogRepository implements domain.BlogRepository for testing
type MockBlogRepository struct {
	MockCatalogRepository[domain.Blog]
	IncrementViewsFunc func(ctx context.Context, id string) error
	FindReactionFunc   func(ctx context.Context, blogID, userID string) (*domain.BlogReaction, error)
	SetReactionFunc    func(ctx context.Context, reaction *domain.BlogReaction) error
	DeleteReactionFunc func(ctx context.Context, blogID, userID string) error
	CountReactionsFunc func(ctx context.Context, blogID string) (int64, int64, error)
}

// NewMockBlogRepository creates a new MockBlogRepository
func NewMockBlogRepository() *MockBlogRepository {
	return &MockBlogRepository{}
}

// IncrementViews bumps the view counter
func (m *MockBlogRepository) IncrementViews(ctx context.Context, id string) error {
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

// FindReaction loads a user's reaction
func (m *MockBlogRepository) FindReaction(ctx context.Context, blogID, userID string) (*domain.BlogReaction, error) {
	if m.FindReactionFunc != nil {
		return m.FindReactionFunc(ctx, blogID, userID)
	}
	return nil, nil
}

// SetReaction stores a reaction
func (m *MockBlogRepository) SetReaction(ctx context.Context, reaction *domain.BlogReaction) error {
	if m.SetReactionFunc != nil {
		return m.SetReactionFunc(ctx, reaction)
	}
	return nil
}

// DeleteReaction removes a reaction
func (m *MockBlogRepository) DeleteReaction(ctx context.Context, blogID, userID string) error {
	if m.DeleteReactionFunc != nil {
		return m.DeleteReactionFunc(ctx, blogID, userID)
	}
	return nil
}

// CountReactions tallies likes and dislikes
func (m *MockBlogRepository) CountReactions(ctx context.Context, blogID string) (int64, int64, error) {
	if m.CountReactionsFunc != nil {
		return m.CountReactionsFunc(ctx, blogID)
	}
	return 0, 0, nil
}

// MockCartRepository implements domain.CartRepository for testing
type MockCartRepository struct {
	ReplaceFunc      func(ctx context.Context, cart *domain.Cart) error
	FindByUserFunc   func(ctx context.Context, userID string) (*domain.Cart, error)
	DeleteByUserFunc func(ctx context.Context, userID string) (*domain.Cart, error)
}

// NewMockCartRepository creates a new MockCartRepository
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

// Replace stores the user's cart
func (m *MockCartRepository) Replace(ctx context.Context, cart *domain.Cart) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, cart)
	}
	return nil
}

// FindByUser loads the user's cart
func (m *MockCartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, domain.NewNotFound("Cart")
}

// DeleteByUser removes the user's cart
func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil, domain.NewNotFound("Cart")
}

// MockProductCache implements domain.ProductCache with an in-memory map
type MockProductCache struct {
	Items       map[string]domain.Product
	Invalidated []string
}

// NewMockProductCache creates an empty MockProductCache
func NewMockProductCache() *MockProductCache {
	return &MockProductCache{Items: map[string]domain.Product{}}
}

// Get returns a cached product
func (m *MockProductCache) Get(_ context.Context, id string) (*domain.Product, bool) {
	p, ok := m.Items[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Set caches a product
func (m *MockProductCache) Set(_ context.Context, product *domain.Product) {
	m.Items[product.ID] = *product
}

// Invalidate drops a cached product
func (m *MockProductCache) Invalidate(_ context.Context, id string) {
	delete(m.Items, id)
	m.Invalidated = append(m.Invalidated, id)
}

// Compile-time interface compliance verification
var (
	_ domain.CatalogRepository[domain.Brand] = (*MockCatalogRepository[domain.Brand])(nil)
	_ domain.ProductRepository               = (*MockProductRepository)(nil)
	_ domain.BlogRepository                  = (*MockBlogRepository)(nil)
	_ domain.CartRepository                  = (*MockCartRepository)(nil)
	_ domain.ProductCache                    = (*MockProductCache)(nil)
)
