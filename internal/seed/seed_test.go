package seed

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeedSample_LoadsFixtures(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	ctx := context.Background()

	loaded, err := SeedSample(ctx, db, SeedOptions{FastHash: true})
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 3, count(t, db, &models.Category{}))
	assert.EqualValues(t, 4, count(t, db, &models.Tag{}))
	assert.EqualValues(t, 3, count(t, db, &models.Post{}))
	assert.EqualValues(t, 3, count(t, db, &models.Comment{}))
	assert.EqualValues(t, 3, count(t, db, &models.Like{}))
	assert.EqualValues(t, 3, count(t, db, &models.PostTag{}))

	var john models.User
	require.NoError(t, db.Where("username = ?", "john").First(&john).Error)
	assert.Equal(t, "John Doe", john.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(john.PasswordHash), []byte(SamplePassword)))

	var flask models.Post
	require.NoError(t, db.Preload("Tags").Where("title = ?", "Getting Started with Flask").First(&flask).Error)
	assert.Equal(t, john.ID, flask.UserID)
	assert.Equal(t, models.PostStatusPublished, flask.Status)
	assert.NotNil(t, flask.PublishedAt)
	require.NotNil(t, flask.CategoryID)
	assert.Len(t, flask.Tags, 3)

	var approved int64
	require.NoError(t, db.Model(&models.Comment{}).Where("is_approved = ?", true).Count(&approved).Error)
	assert.EqualValues(t, 3, approved)
}

func TestSeedSample_SkipsWhenUsersExist(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}).Error)

	loaded, err := SeedSample(ctx, db, SeedOptions{FastHash: true})
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.EqualValues(t, 1, count(t, db, &models.User{}))
	assert.EqualValues(t, 0, count(t, db, &models.Post{}))
}

func TestSeed_IsIdempotentForSampleData(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, SeedOptions{FastHash: true}))
	require.NoError(t, Seed(ctx, db, SeedOptions{FastHash: true}))

	assert.EqualValues(t, 3, count(t, db, &models.User{}))
	assert.EqualValues(t, 3, count(t, db, &models.Post{}))
}

func TestSeed_AddsFakeVolume(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	ctx := context.Background()

	err := Seed(ctx, db, SeedOptions{FakeUsers: 5, FakePosts: 10, FastHash: true, RandSeed: 42})
	require.NoError(t, err)

	assert.EqualValues(t, 8, count(t, db, &models.User{}))
	assert.EqualValues(t, 13, count(t, db, &models.Post{}))

	var orphans int64
	require.NoError(t, db.Model(&models.Post{}).
		Where("user_id NOT IN (?)", db.Model(&models.User{}).Select("id")).
		Count(&orphans).Error)
	assert.Zero(t, orphans)

	var drafts []models.Post
	require.NoError(t, db.Where("status = ?", models.PostStatusDraft).Find(&drafts).Error)
	for _, p := range drafts {
		assert.Nil(t, p.PublishedAt, "draft %d should not be published", p.ID)
	}
}

func TestSeedFake_RequiresAuthors(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)

	err := SeedFake(context.Background(), db, SeedOptions{FakePosts: 2, FastHash: true})
	assert.ErrorIs(t, err, ErrNoAuthors)
}

func TestSeedFake_NothingRequested(t *testing.T) {
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)

	require.NoError(t, SeedFake(context.Background(), db, SeedOptions{}))
	assert.EqualValues(t, 0, count(t, db, &models.User{}))
}
