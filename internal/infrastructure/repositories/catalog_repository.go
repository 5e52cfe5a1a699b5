package repositories

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
)

// CatalogRepositoryImpl implements domain.CatalogRepository for any
// entity addressed by a string primary key named id
type CatalogRepositoryImpl[T any, PT interface {
	*T
	domain.Entity
}] struct {
	db     *gorm.DB
	entity string
	repo   string
}

// NewCatalogRepository creates a repository for the named entity; the name
// appears in not-found messages
func NewCatalogRepository[T any, PT interface {
	*T
	domain.Entity
}](db *gorm.DB, entity string) *CatalogRepositoryImpl[T, PT] {
	return &CatalogRepositoryImpl[T, PT]{db: db, entity: entity, repo: "catalog_repository." + entity}
}

// Create implements domain.CatalogRepository
func (r *CatalogRepositoryImpl[T, PT]) Create(ctx context.Context, entity *T) error {
	PT(entity).AssignID(domain.NewID())
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return storeError(r.repo, "create", err)
	}
	return nil
}

// FindByID implements domain.CatalogRepository
func (r *CatalogRepositoryImpl[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	entity := new(T)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(entity).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound(r.entity)
		}
		return nil, storeError(r.repo, "find_by_id", err)
	}
	return entity, nil
}

// List implements domain.CatalogRepository
func (r *CatalogRepositoryImpl[T, PT]) List(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Order("created_at").Find(&entities).Error; err != nil {
		return nil, storeError(r.repo, "list", err)
	}
	return entities, nil
}

// Update implements domain.CatalogRepository; fields are keyed by column
func (r *CatalogRepositoryImpl[T, PT]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, domain.ErrDuplicate
		}
		return nil, storeError(r.repo, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.NewNotFound(r.entity)
	}
	return r.FindByID(ctx, id)
}

// Delete implements domain.CatalogRepository and returns the removed record
func (r *CatalogRepositoryImpl[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	entity, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return nil, storeError(r.repo, "delete", err)
	}
	return entity, nil
}
