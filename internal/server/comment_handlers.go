package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body object{content=string,post_id=int,user_id=int} true "New comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		PostID  uint   `json:"post_id"`
		UserID  uint   `json:"user_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  actorID(c, req.UserID),
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(comment)
}

// GetPostComments handles GET /api/comments/post/:postId
// @Summary List the approved comments of a post, oldest first
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Param page query int false "Page (1-based)"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} models.Page[models.Comment]
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/post/{postId} [get]
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListPostComments(c.UserContext(), postID, parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(page)
}

// UpdateComment handles PUT /api/comments/:id
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{user_id=int,content=string} true "Actor and new content"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		UserID  uint   `json:"user_id"`
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    actorID(c, req.UserID),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    actorID(c, req.UserID),
		CommentID: id,
	}); err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(deletedMessage("Comment"))
}
