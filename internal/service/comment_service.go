package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" || in.PostID == 0 || in.UserID == 0 {
		return nil, models.NewValidationError("Missing required fields")
	}

	if ok, err := s.postRepo.Exists(ctx, in.PostID); err != nil {
		return nil, err
	} else if !ok {
		return nil, models.NewNotFoundError("Post")
	}
	if ok, err := s.userRepo.Exists(ctx, in.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, models.NewNotFoundError("User")
	}

	comment := &models.Comment{
		Content:    in.Content,
		UserID:     in.UserID,
		PostID:     in.PostID,
		IsApproved: true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListPostComments pages the approved comments of an existing post.
func (s *CommentService) ListPostComments(ctx context.Context, postID uint, page models.PageRequest) (models.Page[models.Comment], error) {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	if !ok {
		return models.Page[models.Comment]{}, models.NewNotFoundError("Post")
	}
	return s.commentRepo.ListApprovedByPost(ctx, postID, page)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError()
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if in.UserID == 0 {
		return models.NewValidationError("user_id is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError()
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
