package services

import (
	"context"
	"testing"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reactionRepo backs MockBlogRepository with an in-memory reaction table
func reactionRepo() (*mocks.MockBlogRepository, map[string]domain.ReactionKind, *int) {
	reactions := map[string]domain.ReactionKind{}
	views := 0
	repo := mocks.NewMockBlogRepository()
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Blog, error) {
		if id != "b1" {
			return nil, domain.NewNotFound("Blog")
		}
		return &domain.Blog{ID: id, Title: "Hello", NumViews: views}, nil
	}
	repo.IncrementViewsFunc = func(ctx context.Context, id string) error {
		if id != "b1" {
			return domain.NewNotFound("Blog")
		}
		views++
		return nil
	}
	repo.FindReactionFunc = func(ctx context.Context, blogID, userID string) (*domain.BlogReaction, error) {
		kind, ok := reactions[userID]
		if !ok {
			return nil, nil
		}
		return &domain.BlogReaction{BlogID: blogID, UserID: userID, Kind: kind}, nil
	}
	repo.SetReactionFunc = func(ctx context.Context, r *domain.BlogReaction) error {
		reactions[r.UserID] = r.Kind
		return nil
	}
	repo.DeleteReactionFunc = func(ctx context.Context, blogID, userID string) error {
		delete(reactions, userID)
		return nil
	}
	repo.CountReactionsFunc = func(ctx context.Context, blogID string) (int64, int64, error) {
		var likes, dislikes int64
		for _, k := range reactions {
			if k == domain.ReactionLike {
				likes++
			} else {
				dislikes++
			}
		}
		return likes, dislikes, nil
	}
	return repo, reactions, &views
}

func TestBlogServiceImpl_Reactions(t *testing.T) {
	repo, _, _ := reactionRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()

	steps := []struct {
		name     string
		act      func(context.Context, string, string) (*domain.Blog, error)
		user     string
		likes    int
		dislikes int
	}{
		{"first like", svc.Like, "u1", 1, 0},
		{"second user likes", svc.Like, "u2", 2, 0},
		{"like again withdraws", svc.Like, "u1", 1, 0},
		{"dislike", svc.Dislike, "u1", 1, 1},
		{"like replaces dislike", svc.Like, "u1", 2, 0},
		{"dislike replaces like", svc.Dislike, "u2", 1, 1},
		{"dislike again withdraws", svc.Dislike, "u2", 1, 0},
	}
	for _, step := range steps {
		blog, err := step.act(ctx, "b1", step.user)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.likes, blog.Likes, step.name)
		assert.Equal(t, step.dislikes, blog.Dislikes, step.name)
	}

	_, err := svc.Like(ctx, "missing", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogServiceImpl_GetCountsViews(t *testing.T) {
	repo, reactions, views := reactionRepo()
	reactions["u9"] = domain.ReactionDislike
	svc := NewBlogService(repo)

	blog, err := svc.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, blog.NumViews)
	assert.Equal(t, 1, blog.Dislikes)

	_, err = svc.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, *views)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogServiceImpl_List(t *testing.T) {
	repo, reactions, _ := reactionRepo()
	reactions["u1"] = domain.ReactionLike
	repo.ListFunc = func(ctx context.Context) ([]domain.Blog, error) {
		return []domain.Blog{{ID: "b1"}}, nil
	}
	svc := NewBlogService(repo)

	blogs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, 1, blogs[0].Likes)
}
