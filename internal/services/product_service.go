package services

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shubham23mamgain/bringit/domain"
)

// ProductServiceImpl implements domain.ProductService
type ProductServiceImpl struct {
	repo  domain.ProductRepository
	cache domain.ProductCache
}

// NewProductService creates a new product service
func NewProductService(repo domain.ProductRepository, cache domain.ProductCache) domain.ProductService {
	return &ProductServiceImpl{repo: repo, cache: cache}
}

// Create implements domain.ProductService; the slug is derived from the title
func (s *ProductServiceImpl) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Title = strings.TrimSpace(product.Title)
	if product.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	product.Slug = Slugify(product.Title)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get implements domain.ProductService as a read-through cache lookup
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}

// Query implements domain.ProductService. A page starting past the last
// matching row is ErrPageNotFound; an empty result is ErrNoProducts.
func (s *ProductServiceImpl) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	if q.Paginated() {
		total, err := s.repo.Count(ctx, q.Filters)
		if err != nil {
			return nil, err
		}
		if int64(q.Offset()) >= total {
			return nil, domain.ErrPageNotFound
		}
	}

	products, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNoProducts
	}
	return products, nil
}

// Update implements domain.ProductService; fields are keyed by column
func (s *ProductServiceImpl) Update(ctx context.Context, id string, fields map[string]any) (*domain.Product, error) {
	if title, ok := fields["title"].(string); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		fields["title"] = title
		fields["slug"] = Slugify(title)
	}
	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return p, nil
}

// Delete implements domain.ProductService
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return p, nil
}

// Slugify builds the URL slug of a product title, transliterating accents
func Slugify(s string) string {
	return slug.Make(s)
}
