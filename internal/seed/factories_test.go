package seed

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

func TestFactory_DryRunAssignsIDsWithoutWriting(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, FastHash: true, RandSeed: 7})
	ctx := context.Background()

	user, err := f.CreateUser(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1001, user.ID)
	assert.Regexp(t, usernamePattern, user.Username)
	assert.Equal(t, user.Username+"@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)

	post, err := f.CreatePost(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1002, post.ID)
	assert.Equal(t, user.ID, post.UserID)

	require.NoError(t, f.TagPost(ctx, post, models.Tag{ID: 1}))
	require.NoError(t, f.CreateLike(ctx, user, post))
}

func TestFactory_UsernamesAreUnique(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, FastHash: true, RandSeed: 1})

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		user, err := f.CreateUser(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[user.Username], "duplicate username %q", user.Username)
		seen[user.Username] = true
	}
}

func TestFactory_BuildPost(t *testing.T) {
	f := NewFactory(nil, SeedOptions{MaxDays: 3, RandSeed: 3})
	author := &models.User{ID: 9}

	published := f.BuildPost(author)
	assert.Equal(t, models.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, published.CreatedAt, *published.PublishedAt)
	assert.LessOrEqual(t, len(published.Title), 200)
	assert.NotEmpty(t, published.Content)

	draft := f.BuildPost(author, func(p *models.Post) { p.Status = models.PostStatusDraft })
	assert.Nil(t, draft.PublishedAt)
}

func TestFactory_PickReturnsDistinctIndexes(t *testing.T) {
	f := NewFactory(nil, SeedOptions{RandSeed: 5})

	got := f.pick(4, 10)
	assert.Len(t, got, 4)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, got)
	assert.Empty(t, f.pick(0, 2))
}
