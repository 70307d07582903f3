package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	existsFn        func(context.Context, uint) (bool, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, models.PageRequest) (models.Page[models.User], error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, page models.PageRequest) (models.Page[models.User], error) {
	return s.listFn(ctx, page)
}
func (s *userRepoStub) Count(context.Context) (int64, error) {
	return 0, nil
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		existsFn:        func(context.Context, uint) (bool, error) { return true, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn: func(_ context.Context, p models.PageRequest) (models.Page[models.User], error) {
			return models.NewPage[models.User](nil, 0, p.Normalize()), nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post, []uint) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	getAndIncrFn func(context.Context, uint) (*models.Post, error)
	existsFn     func(context.Context, uint) (bool, error)
	listFn       func(context.Context, models.PostFilter, models.PageRequest) (models.Page[models.Post], error)
	updateFn     func(context.Context, *models.Post, []uint) error
	deleteFn     func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return s.createFn(ctx, post, tagIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetAndIncrementViews(ctx context.Context, id uint) (*models.Post, error) {
	return s.getAndIncrFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, f models.PostFilter, p models.PageRequest) (models.Page[models.Post], error) {
	return s.listFn(ctx, f, p)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return s.updateFn(ctx, post, tagIDs)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(context.Context, *models.Post, []uint) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getAndIncrFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		existsFn:     func(context.Context, uint) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ models.PostFilter, p models.PageRequest) (models.Page[models.Post], error) {
			return models.NewPage[models.Post](nil, 0, p.Normalize()), nil
		},
		updateFn: func(context.Context, *models.Post, []uint) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	existsFn    func(context.Context, uint) (bool, error)
	updateFn    func(context.Context, *models.Category) error
}

func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *categoryRepoStub) List(context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}
func (s *categoryRepoStub) Update(ctx context.Context, c *models.Category) error {
	return s.updateFn(ctx, c)
}
func (s *categoryRepoStub) Delete(context.Context, uint) error {
	return nil
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:    func(context.Context, *models.Category) error { return nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		getBySlugFn: func(context.Context, string) (*models.Category, error) { return nil, nil },
		existsFn:    func(context.Context, uint) (bool, error) { return true, nil },
		updateFn:    func(context.Context, *models.Category) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	createFn    func(context.Context, *models.Tag) error
	getByIDFn   func(context.Context, uint) (*models.Tag, error)
	getBySlugFn func(context.Context, string) (*models.Tag, error)
	findByIDsFn func(context.Context, []uint) ([]models.Tag, error)
}

func (s *tagRepoStub) Create(ctx context.Context, t *models.Tag) error {
	return s.createFn(ctx, t)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *tagRepoStub) FindByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.findByIDsFn(ctx, ids)
}
func (s *tagRepoStub) List(context.Context) ([]models.Tag, error) {
	return []models.Tag{}, nil
}
func (s *tagRepoStub) Delete(context.Context, uint) error {
	return nil
}

// noopTagRepo knows every requested tag ID.
func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:    func(context.Context, *models.Tag) error { return nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getBySlugFn: func(context.Context, string) (*models.Tag, error) { return nil, nil },
		findByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			seen := map[uint]bool{}
			tags := []models.Tag{}
			for _, id := range ids {
				if !seen[id] {
					seen[id] = true
					tags = append(tags, models.Tag{ID: id})
				}
			}
			return tags, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	listFn    func(context.Context, uint, models.PageRequest) (models.Page[models.Comment], error)
	updateFn  func(context.Context, *models.Comment) error
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID uint, p models.PageRequest) (models.Page[models.Comment], error) {
	return s.listFn(ctx, postID, p)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listFn: func(_ context.Context, _ uint, p models.PageRequest) (models.Page[models.Comment], error) {
			return models.NewPage[models.Comment](nil, 0, p.Normalize()), nil
		},
		updateFn: func(context.Context, *models.Comment) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn func(context.Context, *models.Like) error
	findFn   func(context.Context, uint, uint) (*models.Like, error)
	deleteFn func(context.Context, uint, uint) error
}

func (s *likeRepoStub) Create(ctx context.Context, l *models.Like) error {
	return s.createFn(ctx, l)
}
func (s *likeRepoStub) Find(ctx context.Context, userID, postID uint) (*models.Like, error) {
	return s.findFn(ctx, userID, postID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) error {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) ListByPost(_ context.Context, _ uint, p models.PageRequest) (models.Page[models.Like], error) {
	return models.NewPage[models.Like](nil, 0, p.Normalize()), nil
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn: func(context.Context, *models.Like) error { return nil },
		findFn:   func(context.Context, uint, uint) (*models.Like, error) { return nil, nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeForbidden)
}
