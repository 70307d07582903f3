package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// StatusAll disables the status filter of a post listing.
const StatusAll = "all"

type PostService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	now          func() time.Time
}

type CreatePostInput struct {
	UserID     uint
	Title      string
	Content    string
	CategoryID *uint
	Status     string
	TagIDs     []uint
}

type ListPostsInput struct {
	Page       models.PageRequest
	Status     string
	UserID     uint
	CategoryID uint
	TagSlug    string
}

// UpdatePostInput carries a partial update. CategorySet distinguishes an
// explicit null category (detach) from an absent one; a nil TagIDs keeps the
// current tags.
type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       *string
	Content     *string
	Status      *string
	CategoryID  *uint
	CategorySet bool
	TagIDs      []uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		now:          time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" || in.UserID == 0 {
		return nil, models.NewValidationError("Missing required fields")
	}
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	if err := s.ensureUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureTags(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		Status:     status,
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
	}
	if status == models.PostStatusPublished {
		now := s.now().UTC()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post, in.TagIDs); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post with its approved comments and counts the read.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetAndIncrementViews(ctx, id)
}

// ListPosts pages posts newest first. An empty status means published only.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (models.Page[models.Post], error) {
	filter := models.PostFilter{
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		TagSlug:    in.TagSlug,
	}
	switch in.Status {
	case "":
		filter.Status = models.PostStatusPublished
	case StatusAll:
	default:
		if !models.ValidPostStatus(in.Status) {
			return models.Page[models.Post]{}, models.NewValidationError("Invalid status")
		}
		filter.Status = in.Status
	}
	return s.postRepo.List(ctx, filter, in.Page)
}

// ListPostsByTag pages the published posts carrying the tag.
func (s *PostService) ListPostsByTag(ctx context.Context, tagID uint, page models.PageRequest) (models.Page[models.Post], error) {
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return models.Page[models.Post]{}, err
	}
	return s.postRepo.List(ctx, models.PostFilter{Status: models.PostStatusPublished, TagID: tagID}, page)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError()
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if err := validation.ValidateContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}
	if in.Status != nil {
		if !models.ValidPostStatus(*in.Status) {
			return nil, models.NewValidationError("Invalid status")
		}
		post.Status = *in.Status
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}
	if in.CategorySet {
		if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if err := s.ensureTags(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post, in.TagIDs); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if in.UserID == 0 {
		return models.NewValidationError("user_id is required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError()
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) ensureUser(ctx context.Context, id uint) error {
	ok, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User")
	}
	return nil
}

func (s *PostService) ensureCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.categoryRepo.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Category")
	}
	return nil
}

func (s *PostService) ensureTags(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	distinct := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(tags) != len(distinct) {
		return models.NewNotFoundError("Tag")
	}
	return nil
}
