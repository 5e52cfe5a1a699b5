package repositories

import (
	"context"
	"fmt"

	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productRepo = "product_repository"

var filterOps = map[domain.FilterOp]string{
	domain.OpEq:  "=",
	domain.OpGt:  ">",
	domain.OpGte: ">=",
	domain.OpLt:  "<",
	domain.OpLte: "<=",
}

// ProductRepositoryImpl implements domain.ProductRepository
type ProductRepositoryImpl struct {
	*CatalogRepositoryImpl[domain.Product, *domain.Product]
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{
		CatalogRepositoryImpl: NewCatalogRepository[domain.Product](db, "Product"),
		db:                    db,
	}
}

// Query implements domain.ProductRepository. Column names in q must come
// from a whitelist; only values are bound as parameters.
func (r *ProductRepositoryImpl) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	tx := applyFilters(r.db.WithContext(ctx).Model(&domain.Product{}), q.Filters)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	for _, s := range q.Sort {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	if q.Paginated() && q.Limit > 0 {
		tx = tx.Offset(q.Offset()).Limit(q.Limit)
	}

	var products []domain.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, storeError(productRepo, "query", err)
	}
	return products, nil
}

// Count implements domain.ProductRepository
func (r *ProductRepositoryImpl) Count(ctx context.Context, filters []domain.Filter) (int64, error) {
	var n int64
	if err := applyFilters(r.db.WithContext(ctx).Model(&domain.Product{}), filters).Count(&n).Error; err != nil {
		return 0, storeError(productRepo, "count", err)
	}
	return n, nil
}

// FindByIDs implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	var products []domain.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, storeError(productRepo, "find_by_ids", err)
	}
	return products, nil
}

func applyFilters(tx *gorm.DB, filters []domain.Filter) *gorm.DB {
	for _, f := range filters {
		op, ok := filterOps[f.Op]
		if !ok {
			op = "="
		}
		tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, op), f.Value)
	}
	return tx
}
