package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// TaxonomyService manages categories and tags.
type TaxonomyService struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdateCategoryInput carries a partial update; nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID  uint
	Name        *string
	Slug        *string
	Description *string
}

type CreateTagInput struct {
	Name string
	Slug string
}

func NewTaxonomyService(categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *TaxonomyService {
	return &TaxonomyService{categoryRepo: categoryRepo, tagRepo: tagRepo}
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Name == "" || in.Slug == "" {
		return nil, models.NewValidationError("Missing required fields")
	}
	if err := validateNameAndSlug(in.Name, in.Slug); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateError("Category slug already exists")
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug, Description: in.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *TaxonomyService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	slugChanged := false
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		slugChanged = slug != category.Slug
		category.Slug = slug
	}
	if err := validateNameAndSlug(category.Name, category.Slug); err != nil {
		return nil, err
	}

	if slugChanged {
		existing, err := s.categoryRepo.GetBySlug(ctx, category.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, models.NewDuplicateError("Category slug already exists")
		}
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *TaxonomyService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Name == "" || in.Slug == "" {
		return nil, models.NewValidationError("Missing required fields")
	}
	if err := validateNameAndSlug(in.Name, in.Slug); err != nil {
		return nil, err
	}

	existing, err := s.tagRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateError("Tag slug already exists")
	}

	tag := &models.Tag{Name: in.Name, Slug: in.Slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TaxonomyService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id uint) error {
	return s.tagRepo.Delete(ctx, id)
}

func validateNameAndSlug(name, slug string) error {
	if err := validation.ValidateName(name); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
