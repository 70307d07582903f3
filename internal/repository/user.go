package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page models.PageRequest) (models.Page[models.User], error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db    *gorm.DB
	trace *observability.TraceLayer
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, trace: tracer(db)}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (user *models.User, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByID", "users")
	defer func() { endSpan(span, err) }()

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &u, nil
}

// GetByEmail returns nil, nil when no user has the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByEmail", "users")
	defer func() { endSpan(span, err) }()

	return r.findOne(ctx, "email = ?", email)
}

// GetByUsername returns nil, nil when no user has the name.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user *models.User, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "GetByUsername", "users")
	defer func() { endSpan(span, err) }()

	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (ok bool, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Exists", "users")
	defer func() { endSpan(span, err) }()

	return exists(ctx, r.db, &models.User{}, id)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Create", "users")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return userWriteError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Update", "users")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).
		Model(user).
		Select("username", "email", "password_hash", "full_name", "updated_at").
		Updates(user)
	if res.Error != nil {
		return userWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User")
	}
	return nil
}

// userWriteError names the column behind a unique violation.
func userWriteError(err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		switch {
		case strings.Contains(constraint, "email"):
			return models.NewDuplicateError("Email already exists")
		case strings.Contains(constraint, "username"):
			return models.NewDuplicateError("Username already exists")
		default:
			return models.NewDuplicateError("User already exists")
		}
	}
	return models.NewInternalError(err)
}

// Delete removes the user; posts, comments and likes go with it through the
// ON DELETE CASCADE foreign keys.
func (r *userRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Delete", "users")
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, page models.PageRequest) (result models.Page[models.User], err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "List", "users")
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).Model(&models.User{}).Session(&gorm.Session{})
	return paginate[models.User](q, page, "id ASC")
}

func (r *userRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := r.trace.TraceRepositoryMethod(ctx, "Count", "users")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
