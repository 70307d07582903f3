package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// TagRepository defines persistence operations for tags. Tags are immutable
// once created.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db, trace: tracer(db)}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "tags")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return models.NewDuplicateError("Tag slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (tag *models.Tag, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "tags")
	defer func() { endSpan(span, err) }()

	var t models.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFoundOr(err, "Tag")
	}
	return &t, nil
}

// GetBySlug returns nil, nil when the slug is free.
func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (tag *models.Tag, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetBySlug", "tags")
	defer func() { endSpan(span, err) }()

	var t models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &t, nil
}

// FindByIDs loads the tags with the given IDs. Missing IDs are simply absent
// from the result.
func (r *tagRepository) FindByIDs(ctx context.Context, ids []uint) (tags []models.Tag, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "FindByIDs", "tags")
	defer func() { endSpan(span, err) }()

	tags = make([]models.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) (tags []models.Tag, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "List", "tags")
	defer func() { endSpan(span, err) }()

	tags = make([]models.Tag, 0)
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Delete removes the tag and, through the join-table cascade, its post links.
func (r *tagRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "tags")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.Tag{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tag")
	}
	return nil
}
