package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       uint
		mockBehavior func()
		expectedUser *models.User
		expectedCode string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedCode: models.CodeNotFound,
		},
		{
			name:   "Driver Failure",
			userID: 3,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(3, 1).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedCode != "" {
				assert.True(t, models.HasCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, user)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_ClassifiesPgUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		message    string
	}{
		{"idx_users_username", "Username already exists"},
		{"idx_users_email", "Email already exists"},
		{"users_pkey", "User already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})
			mock.ExpectRollback()

			err := repo.Create(context.Background(), &models.User{Username: "john", Email: "j@x.com", PasswordHash: "h"})
			require.Error(t, err)
			assert.True(t, models.HasCode(err, models.CodeDuplicate))
			assert.Equal(t, tt.message, err.Error())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_DuplicatesNeverCreateSecondRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "john", Email: "j@x.com", PasswordHash: "h"}))

	err := repo.Create(ctx, &models.User{Username: "john", Email: "other@x.com", PasswordHash: "h"})
	assert.True(t, models.HasCode(err, models.CodeDuplicate))
	assert.Equal(t, "Username already exists", err.Error())

	err = repo.Create(ctx, &models.User{Username: "johnny", Email: "j@x.com", PasswordHash: "h"})
	assert.True(t, models.HasCode(err, models.CodeDuplicate))
	assert.Equal(t, "Email already exists", err.Error())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	john := createUser(t, db, "john")

	got, err := repo.GetByUsername(ctx, "john")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, john.ID, got.ID)

	got, err = repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.GetByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, got)

	ok, err := repo.Exists(ctx, john.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, john.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	john := createUser(t, db, "john")
	createUser(t, db, "jane")

	john.FullName = "John Doe"
	require.NoError(t, repo.Update(ctx, john))
	got, err := repo.GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.FullName)

	john.Username = "jane"
	err = repo.Update(ctx, john)
	assert.Equal(t, "Username already exists", err.Error())

	assert.True(t, models.HasCode(repo.Update(ctx, &models.User{ID: 999, Username: "x", Email: "x@x.com"}), models.CodeNotFound))

	createPost(t, db, john.ID, "bye", models.PostStatusPublished)
	require.NoError(t, repo.Delete(ctx, john.ID))
	assert.True(t, models.HasCode(repo.Delete(ctx, john.ID), models.CodeNotFound))

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
}

func TestUserRepository_ListPartitionsRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		createUser(t, db, fmt.Sprintf("user%02d", i))
	}

	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		res, err := repo.List(ctx, models.PageRequest{Page: page, PerPage: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(23), res.Total)
		assert.Equal(t, 3, res.Pages)
		assert.Equal(t, page, res.CurrentPage)
		for _, u := range res.Items {
			assert.False(t, seen[u.ID], "user %d on two pages", u.ID)
			seen[u.ID] = true
		}
	}
	assert.Len(t, seen, 23)

	past, err := repo.List(ctx, models.PageRequest{Page: 9, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
	assert.Equal(t, int64(23), past.Total)
}
