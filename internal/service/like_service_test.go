package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_LikePost(t *testing.T) {
	t.Parallel()

	t.Run("missing ids", func(t *testing.T) {
		t.Parallel()
		svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.LikePost(context.Background(), LikeInput{UserID: 1})
		assertValidationError(t, err)
		assert.Equal(t, "Missing user_id or post_id", err.Error())
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.existsFn = func(context.Context, uint) (bool, error) { return false, nil }
		svc := NewLikeService(noopLikeRepo(), posts, noopUserRepo())
		_, err := svc.LikePost(context.Background(), LikeInput{UserID: 1, PostID: 9})
		assert.Equal(t, "Post not found", err.Error())
	})

	t.Run("already liked", func(t *testing.T) {
		t.Parallel()
		likes := noopLikeRepo()
		likes.findFn = func(_ context.Context, userID, postID uint) (*models.Like, error) {
			return &models.Like{ID: 3, UserID: userID, PostID: postID}, nil
		}
		created := false
		likes.createFn = func(context.Context, *models.Like) error {
			created = true
			return nil
		}
		svc := NewLikeService(likes, noopPostRepo(), noopUserRepo())
		_, err := svc.LikePost(context.Background(), LikeInput{UserID: 1, PostID: 2})
		assertAppError(t, err, models.CodeAlreadyLiked)
		assert.Equal(t, "You already liked this post", err.Error())
		assert.False(t, created)
	})

	t.Run("creates like", func(t *testing.T) {
		t.Parallel()
		svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopUserRepo())
		like, err := svc.LikePost(context.Background(), LikeInput{UserID: 1, PostID: 2})
		require.NoError(t, err)
		assert.Equal(t, uint(1), like.UserID)
		assert.Equal(t, uint(2), like.PostID)
	})
}

func TestLikeService_UnlikePost(t *testing.T) {
	t.Parallel()
	likes := noopLikeRepo()
	likes.deleteFn = func(context.Context, uint, uint) error {
		return models.NewNotFoundError("Like")
	}
	svc := NewLikeService(likes, noopPostRepo(), noopUserRepo())

	assertValidationError(t, svc.UnlikePost(context.Background(), LikeInput{PostID: 2}))
	assertAppError(t, svc.UnlikePost(context.Background(), LikeInput{UserID: 1, PostID: 2}), models.CodeNotFound)
}

func TestLikeService_ListPostLikes(t *testing.T) {
	t.Parallel()
	svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopUserRepo())

	page, err := svc.ListPostLikes(context.Background(), 1, models.PageRequest{Page: 2, PerPage: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 5, page.PerPage)
}
