package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db, trace: tracer(db)}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "categories")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return categoryWriteError(err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (category *models.Category, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "categories")
	defer func() { endSpan(span, err) }()

	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFoundOr(err, "Category")
	}
	return &c, nil
}

// GetBySlug returns nil, nil when the slug is free.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (category *models.Category, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetBySlug", "categories")
	defer func() { endSpan(span, err) }()

	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &c, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Exists", "categories")
	defer func() { endSpan(span, err) }()

	return exists(ctx, r.db, &models.Category{}, id)
}

func (r *categoryRepository) List(ctx context.Context) (categories []models.Category, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "List", "categories")
	defer func() { endSpan(span, err) }()

	categories = make([]models.Category, 0)
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Update", "categories")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).
		Model(category).
		Select("name", "slug", "description", "updated_at").
		Updates(category)
	if res.Error != nil {
		return categoryWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category")
	}
	return nil
}

// Delete removes the category; its posts keep existing with category_id NULL.
func (r *categoryRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "categories")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category")
	}
	return nil
}

func categoryWriteError(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return models.NewDuplicateError("Category slug already exists")
	}
	return models.NewInternalError(err)
}
