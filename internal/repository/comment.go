package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListApprovedByPost(ctx context.Context, postID uint, page models.PageRequest) (models.Page[models.Comment], error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, trace: tracer(db)}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "comments")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if foreignKeyViolation(err) {
			return models.NewNotFoundError("Referenced resource")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (comment *models.Comment, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "comments")
	defer func() { endSpan(span, err) }()

	var c models.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFoundOr(err, "Comment")
	}
	return &c, nil
}

// ListApprovedByPost pages a post's approved comments, oldest first.
func (r *commentRepository) ListApprovedByPost(ctx context.Context, postID uint, page models.PageRequest) (result models.Page[models.Comment], err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "ListApprovedByPost", "comments")
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_approved = ?", postID, true).
		Session(&gorm.Session{})
	return paginate[models.Comment](q, page, "created_at ASC, id ASC")
}

// Update rewrites the comment body.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Update", "comments")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Model(comment).Select("content", "updated_at").Updates(comment)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment")
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "comments")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment")
	}
	return nil
}
