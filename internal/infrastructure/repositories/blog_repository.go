package repositories

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const blogRepo = "blog_repository"

// BlogRepositoryImpl implements domain.BlogRepository
type BlogRepositoryImpl struct {
	*CatalogRepositoryImpl[domain.Blog, *domain.Blog]
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) domain.BlogRepository {
	return &BlogRepositoryImpl{
		CatalogRepositoryImpl: NewCatalogRepository[domain.Blog](db, "Blog"),
		db:                    db,
	}
}

// Delete removes the blog together with its reactions
func (r *BlogRepositoryImpl) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&domain.BlogReaction{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Blog{}).Error
	})
	if err != nil {
		return nil, storeError(blogRepo, "delete", err)
	}
	return blog, nil
}

// IncrementViews implements domain.BlogRepository
func (r *BlogRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Where("id = ?", id).
		UpdateColumn("num_views", gorm.Expr("num_views + ?", 1))
	if res.Error != nil {
		return storeError(blogRepo, "increment_views", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("Blog")
	}
	return nil
}

// FindReaction returns nil without error when the user has not reacted
func (r *BlogRepositoryImpl) FindReaction(ctx context.Context, blogID, userID string) (*domain.BlogReaction, error) {
	var reaction domain.BlogReaction
	err := r.db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		First(&reaction).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeError(blogRepo, "find_reaction", err)
	}
	return &reaction, nil
}

// SetReaction implements domain.BlogRepository as an upsert
func (r *BlogRepositoryImpl) SetReaction(ctx context.Context, reaction *domain.BlogReaction) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blog_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind"}),
	}).Create(reaction).Error
	if err != nil {
		return storeError(blogRepo, "set_reaction", err)
	}
	return nil
}

// DeleteReaction implements domain.BlogRepository
func (r *BlogRepositoryImpl) DeleteReaction(ctx context.Context, blogID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&domain.BlogReaction{}).Error
	if err != nil {
		return storeError(blogRepo, "delete_reaction", err)
	}
	return nil
}

// CountReactions implements domain.BlogRepository
func (r *BlogRepositoryImpl) CountReactions(ctx context.Context, blogID string) (likes, dislikes int64, err error) {
	var rows []struct {
		Kind domain.ReactionKind
		N    int64
	}
	err = r.db.WithContext(ctx).Model(&domain.BlogReaction{}).
		Select("kind, count(*) AS n").
		Where("blog_id = ?", blogID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, storeError(blogRepo, "count_reactions", err)
	}
	for _, row := range rows {
		switch row.Kind {
		case domain.ReactionLike:
			likes = row.N
		case domain.ReactionDislike:
			dislikes = row.N
		}
	}
	return likes, dislikes, nil
}
