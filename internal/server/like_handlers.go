package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type likeRequest struct {
	UserID uint `json:"user_id"`
	PostID uint `json:"post_id"`
}

// LikePost handles POST /api/likes
// @Summary Like a post
// @Tags likes
// @Accept json
// @Produce json
// @Param request body likeRequest true "Actor and post"
// @Success 201 {object} models.Like
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /likes [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	var req likeRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	like, err := s.likeService.LikePost(c.UserContext(), service.LikeInput{
		UserID: actorID(c, req.UserID),
		PostID: req.PostID,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikePost handles DELETE /api/likes
// @Summary Remove a like
// @Tags likes
// @Accept json
// @Produce json
// @Param request body likeRequest true "Actor and post"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /likes [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	var req likeRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.PostID == 0 {
		req.PostID = queryUint(c, "post_id")
	}

	if err := s.likeService.UnlikePost(c.UserContext(), service.LikeInput{
		UserID: actorID(c, req.UserID),
		PostID: req.PostID,
	}); err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post unliked successfully"})
}

// GetPostLikes handles GET /api/likes/post/:postId
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	page, err := s.likeService.ListPostLikes(c.UserContext(), postID, parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(page)
}
