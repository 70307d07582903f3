package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes. A (user, post)
// pair is either liked or not; the unique index decides races.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Find(ctx context.Context, userID, postID uint) (*models.Like, error)
	Delete(ctx context.Context, userID, postID uint) error
	ListByPost(ctx context.Context, postID uint, page models.PageRequest) (models.Page[models.Like], error)
}

type likeRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, trace: tracer(db)}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "likes")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return models.NewAlreadyLikedError()
		}
		if foreignKeyViolation(err) {
			return models.NewNotFoundError("Post")
		}
		return models.NewInternalError(err)
	}
	observability.LikeEvents.WithLabelValues("like").Inc()
	return nil
}

// Find returns nil, nil when the user has not liked the post.
func (r *likeRepository) Find(ctx context.Context, userID, postID uint) (like *models.Like, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Find", "likes")
	defer func() { endSpan(span, err) }()

	var l models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &l, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "likes")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Like")
	}
	observability.LikeEvents.WithLabelValues("unlike").Inc()
	return nil
}

// ListByPost pages a post's likes, newest first.
func (r *likeRepository) ListByPost(ctx context.Context, postID uint, page models.PageRequest) (result models.Page[models.Like], err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "ListByPost", "likes")
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Session(&gorm.Session{})
	return paginate[models.Like](q, page, "created_at DESC, id DESC")
}
