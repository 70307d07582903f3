package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	tech := &models.Category{Name: "Tech", Slug: "tech"}
	require.NoError(t, repo.Create(ctx, tech))
	require.NoError(t, repo.Create(ctx, &models.Category{Name: "Art", Slug: "art"}))

	err := repo.Create(ctx, &models.Category{Name: "Tech 2", Slug: "tech"})
	assert.True(t, models.HasCode(err, models.CodeDuplicate))
	assert.Equal(t, "Category slug already exists", err.Error())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0].Name)

	bySlug, err := repo.GetBySlug(ctx, "tech")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, tech.ID, bySlug.ID)

	tech.Description = "Computers"
	require.NoError(t, repo.Update(ctx, tech))
	got, err := repo.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computers", got.Description)

	tech.Slug = "art"
	assert.True(t, models.HasCode(repo.Update(ctx, tech), models.CodeDuplicate))

	require.NoError(t, repo.Delete(ctx, tech.ID))
	_, err = repo.GetByID(ctx, tech.ID)
	assert.Equal(t, "Category not found", err.Error())
}

func TestTagRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	goTag := &models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, repo.Create(ctx, goTag))
	err := repo.Create(ctx, &models.Tag{Name: "Golang", Slug: "go"})
	assert.Equal(t, "Tag slug already exists", err.Error())

	tags, err := repo.FindByIDs(ctx, []uint{goTag.ID, 999})
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Delete(ctx, goTag.ID))
	assert.True(t, models.HasCode(repo.Delete(ctx, goTag.ID), models.CodeNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestTagRepository_DeleteKeepsPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "john")
	tag := createTag(t, db, "go")
	post := &models.Post{Title: "t", Content: "c", UserID: user.ID}
	require.NoError(t, NewPostRepository(db).Create(ctx, post, []uint{tag.ID}))

	require.NoError(t, NewTagRepository(db).Delete(ctx, tag.ID))

	got, err := NewPostRepository(db).GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}
