package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetAndIncrementViews(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter models.PostFilter, page models.PageRequest) (models.Page[models.Post], error)
	Update(ctx context.Context, post *models.Post, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, trace: tracer(db)}
}

// mutableColumns are the columns Update may write. views_count is owned by
// GetAndIncrementViews.
var mutableColumns = []string{"title", "content", "status", "published_at", "category_id", "updated_at"}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.id ASC")
	})
}

func preloadApprovedComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_approved = ?", true).Order("created_at ASC, id ASC")
	})
}

// Create inserts the post and its post_tags rows in one transaction and
// reloads the tag set onto post.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "posts")
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if err := insertPostTags(tx, post.ID, tagIDs); err != nil {
			return err
		}
		return reloadPost(tx, post)
	})
	return postWriteError(err)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "posts")
	defer func() { endSpan(span, err) }()

	var p models.Post
	if err := r.db.WithContext(ctx).Scopes(preloadTags).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "Post")
	}
	return &p, nil
}

// GetAndIncrementViews bumps views_count with a single UPDATE, so concurrent
// readers never lose an increment, then loads the post with its tags and
// approved comments.
func (r *postRepository) GetAndIncrementViews(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetAndIncrementViews", "posts")
	defer func() { endSpan(span, err) }()

	db := r.db.WithContext(ctx)
	res := db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	observability.PostViews.Inc()

	var p models.Post
	if err := db.Scopes(preloadTags, preloadApprovedComments).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "Post")
	}
	return &p, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Exists", "posts")
	defer func() { endSpan(span, err) }()

	return exists(ctx, r.db, &models.Post{}, id)
}

// List pages posts newest first.
func (r *postRepository) List(ctx context.Context, filter models.PostFilter, page models.PageRequest) (result models.Page[models.Post], err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "List", "posts")
	defer func() { endSpan(span, err) }()

	db := r.db.WithContext(ctx)
	q := db.Model(&models.Post{})
	if filter.Status != "" {
		q = q.Where("posts.status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		q = q.Where("posts.user_id = ?", filter.UserID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.TagID != 0 {
		q = q.Where("posts.id IN (?)", db.Model(&models.PostTag{}).
			Select("post_tags.post_id").
			Where("post_tags.tag_id = ?", filter.TagID))
	}
	if filter.TagSlug != "" {
		q = q.Where("posts.id IN (?)", db.Model(&models.PostTag{}).
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug))
	}

	return paginate[models.Post](q.Session(&gorm.Session{}), page, "posts.created_at DESC, posts.id DESC", preloadTags)
}

// Update writes the mutable columns of post. A nil tagIDs keeps the current
// tag set; a non-nil slice, even an empty one, replaces it.
func (r *postRepository) Update(ctx context.Context, post *models.Post, tagIDs []uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Update", "posts")
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(post).Select(mutableColumns).Updates(post)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post")
		}
		if tagIDs != nil {
			if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
			if err := insertPostTags(tx, post.ID, tagIDs); err != nil {
				return err
			}
		}
		return reloadPost(tx, post)
	})
	return postWriteError(err)
}

// Delete removes the post; comments, likes and tag links cascade.
func (r *postRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "posts")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}

func insertPostTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, models.PostTag{PostID: postID, TagID: id})
	}
	return tx.Create(&rows).Error
}

// reloadPost refreshes post from the row, including views_count and tags.
func reloadPost(tx *gorm.DB, post *models.Post) error {
	id := post.ID
	*post = models.Post{}
	return tx.Scopes(preloadTags).First(post, id).Error
}

// postWriteError classifies a failed post write. A foreign-key violation means
// the author, category or a tag vanished underneath the write.
func postWriteError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if foreignKeyViolation(err) {
		return models.NewNotFoundError("Referenced resource")
	}
	return models.NewInternalError(err)
}
