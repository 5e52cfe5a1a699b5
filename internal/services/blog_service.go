package services

import (
	"context"

	"github.com/shubham23mamgain/bringit/domain"
)

// BlogServiceImpl implements domain.BlogService
type BlogServiceImpl struct {
	repo domain.BlogRepository
}

// NewBlogService creates a new blog service
func NewBlogService(repo domain.BlogRepository) domain.BlogService {
	return &BlogServiceImpl{repo: repo}
}

// List implements domain.BlogService
func (s *BlogServiceImpl) List(ctx context.Context) ([]domain.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range blogs {
		if err := s.withReactions(ctx, &blogs[i]); err != nil {
			return nil, err
		}
	}
	return blogs, nil
}

// Get implements domain.BlogService; every read counts as a view
func (s *BlogServiceImpl) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Like implements domain.BlogService
func (s *BlogServiceImpl) Like(ctx context.Context, blogID, userID string) (*domain.Blog, error) {
	return s.react(ctx, blogID, userID, domain.ReactionLike)
}

// Dislike implements domain.BlogService
func (s *BlogServiceImpl) Dislike(ctx context.Context, blogID, userID string) (*domain.Blog, error) {
	return s.react(ctx, blogID, userID, domain.ReactionDislike)
}

// react toggles kind: repeating the same reaction withdraws it, the
// opposite reaction replaces it
func (s *BlogServiceImpl) react(ctx context.Context, blogID, userID string, kind domain.ReactionKind) (*domain.Blog, error) {
	if _, err := s.repo.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	current, err := s.repo.FindReaction(ctx, blogID, userID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Kind == kind {
		err = s.repo.DeleteReaction(ctx, blogID, userID)
	} else {
		err = s.repo.SetReaction(ctx, &domain.BlogReaction{BlogID: blogID, UserID: userID, Kind: kind})
	}
	if err != nil {
		return nil, err
	}
	return s.load(ctx, blogID)
}

func (s *BlogServiceImpl) load(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.withReactions(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogServiceImpl) withReactions(ctx context.Context, blog *domain.Blog) error {
	likes, dislikes, err := s.repo.CountReactions(ctx, blog.ID)
	if err != nil {
		return err
	}
	blog.Likes = int(likes)
	blog.Dislikes = int(dislikes)
	return nil
}
