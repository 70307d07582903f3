package server

import (
	"encoding/json"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	UserID     uint   `json:"user_id"`
	CategoryID *uint  `json:"category_id"`
	Status     string `json:"status"`
	TagIDs     []uint `json:"tag_ids"`
}

// updatePostRequest keeps category_id raw so an explicit null (detach) can be
// told apart from an absent key.
type updatePostRequest struct {
	UserID     uint            `json:"user_id"`
	Title      *string         `json:"title"`
	Content    *string         `json:"content"`
	Status     *string         `json:"status"`
	CategoryID json.RawMessage `json:"category_id" swaggertype:"integer"`
	TagIDs     []uint          `json:"tag_ids"`
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "New post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     actorID(c, req.UserID),
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
// @Summary List posts newest first
// @Description Without status only published posts are listed; status=all disables the filter.
// @Tags posts
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param per_page query int false "Page size (max 100)"
// @Param status query string false "draft, published or all"
// @Param user_id query int false "Author"
// @Param category_id query int false "Category"
// @Param tag query string false "Tag slug"
// @Success 200 {object} models.Page[models.Post]
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Page:       parsePage(c),
		Status:     c.Query("status"),
		UserID:     queryUint(c, "user_id"),
		CategoryID: queryUint(c, "category_id"),
		TagSlug:    c.Query("tag"),
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
// @Summary Read a post
// @Description Counts one view and embeds the approved comments.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(models.NewPostDetail(post))
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Description Only the author may update. tag_ids replaces the tag set when present.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body updatePostRequest true "Actor and fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := service.UpdatePostInput{
		UserID:  actorID(c, req.UserID),
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
		TagIDs:  req.TagIDs,
	}
	if len(req.CategoryID) > 0 {
		in.CategorySet = true
		if string(req.CategoryID) != "null" {
			var categoryID uint
			if err := json.Unmarshal(req.CategoryID, &categoryID); err != nil {
				return respondWithAppError(c, models.NewValidationError("Invalid category_id"))
			}
			in.CategoryID = &categoryID
		}
	}

	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param user_id query int false "Actor, when not sent in the body"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
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

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: actorID(c, req.UserID),
		PostID: id,
	}); err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(deletedMessage("Post"))
}
