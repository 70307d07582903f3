package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyService_CreateCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   CreateCategoryInput
		code string
	}{
		{"missing slug", CreateCategoryInput{Name: "Tech"}, models.CodeValidation},
		{"uppercase slug", CreateCategoryInput{Name: "Tech", Slug: "Tech"}, models.CodeValidation},
		{"double hyphen", CreateCategoryInput{Name: "Tech", Slug: "tech--news"}, models.CodeValidation},
		{"valid", CreateCategoryInput{Name: "Tech", Slug: "tech-news", Description: "All things tech"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewTaxonomyService(noopCategoryRepo(), noopTagRepo())
			category, err := svc.CreateCategory(context.Background(), tt.in)
			if tt.code != "" {
				assertAppError(t, err, tt.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.Slug, category.Slug)
			assert.Equal(t, tt.in.Description, category.Description)
		})
	}
}

func TestTaxonomyService_CreateCategory_DuplicateSlug(t *testing.T) {
	t.Parallel()
	categories := noopCategoryRepo()
	categories.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
		return &models.Category{ID: 1, Slug: slug}, nil
	}
	svc := NewTaxonomyService(categories, noopTagRepo())

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Tech", Slug: "tech"})
	assertAppError(t, err, models.CodeDuplicate)
	assert.Equal(t, "Category slug already exists", err.Error())
}

func TestTaxonomyService_UpdateCategory(t *testing.T) {
	t.Parallel()

	newRepo := func() *categoryRepoStub {
		repo := noopCategoryRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "Tech", Slug: "tech"}, nil
		}
		return repo
	}

	t.Run("keeps slug when only name changes", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		lookups := 0
		repo.getBySlugFn = func(context.Context, string) (*models.Category, error) {
			lookups++
			return nil, nil
		}
		category, err := NewTaxonomyService(repo, noopTagRepo()).UpdateCategory(context.Background(), UpdateCategoryInput{
			CategoryID: 1,
			Name:       strPtr("Technology"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Technology", category.Name)
		assert.Equal(t, "tech", category.Slug)
		assert.Zero(t, lookups)
	})

	t.Run("slug taken by another category", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		repo.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 2, Slug: slug}, nil
		}
		_, err := NewTaxonomyService(repo, noopTagRepo()).UpdateCategory(context.Background(), UpdateCategoryInput{
			CategoryID: 1,
			Slug:       strPtr("science"),
		})
		assertAppError(t, err, models.CodeDuplicate)
	})
}

func TestTaxonomyService_CreateTag(t *testing.T) {
	t.Parallel()

	tags := noopTagRepo()
	tags.getBySlugFn = func(_ context.Context, slug string) (*models.Tag, error) {
		if slug == "go" {
			return &models.Tag{ID: 1, Slug: "go"}, nil
		}
		return nil, nil
	}
	svc := NewTaxonomyService(noopCategoryRepo(), tags)

	_, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "Go", Slug: "go"})
	assertAppError(t, err, models.CodeDuplicate)
	assert.Equal(t, "Tag slug already exists", err.Error())

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{Name: " Rust ", Slug: "rust"})
	require.NoError(t, err)
	assert.Equal(t, "Rust", tag.Name)

	_, err = svc.CreateTag(context.Background(), CreateTagInput{Name: "Rust"})
	assertValidationError(t, err)
}
