package repository

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupTestDB returns a migrated in-memory SQLite database for behavioural tests.
func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t, database.PersistentModels()...)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title, status string) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Content: "content of " + title, Status: status, UserID: userID}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: slug, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}
