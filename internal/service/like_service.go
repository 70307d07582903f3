package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type LikeInput struct {
	UserID uint
	PostID uint
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo, userRepo: userRepo}
}

// LikePost moves the (user, post) pair from not-liked to liked.
func (s *LikeService) LikePost(ctx context.Context, in LikeInput) (*models.Like, error) {
	if in.UserID == 0 || in.PostID == 0 {
		return nil, models.NewValidationError("Missing user_id or post_id")
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

	existing, err := s.likeRepo.Find(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewAlreadyLikedError()
	}

	like := &models.Like{UserID: in.UserID, PostID: in.PostID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

// UnlikePost moves the pair from liked back to not-liked.
func (s *LikeService) UnlikePost(ctx context.Context, in LikeInput) error {
	if in.UserID == 0 || in.PostID == 0 {
		return models.NewValidationError("Missing user_id or post_id")
	}
	return s.likeRepo.Delete(ctx, in.UserID, in.PostID)
}

func (s *LikeService) ListPostLikes(ctx context.Context, postID uint, page models.PageRequest) (models.Page[models.Like], error) {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return models.Page[models.Like]{}, err
	}
	if !ok {
		return models.Page[models.Like]{}, models.NewNotFoundError("Post")
	}
	return s.likeRepo.ListByPost(ctx, postID, page)
}
