package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateCategory handles POST /api/categories
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body categoryRequest true "New category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.taxonomyService.CreateCategory(c.UserContext(), service.CreateCategoryInput{
		Name:        deref(req.Name),
		Slug:        deref(req.Slug),
		Description: deref(req.Description),
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories handles GET /api/categories
// @Summary List every category by name
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.UserContext())
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.taxonomyService.GetCategory(c.UserContext(), id)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.taxonomyService.UpdateCategory(c.UserContext(), service.UpdateCategoryInput{
		CategoryID:  id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id
// @Summary Delete a category
// @Description Posts in the category keep existing with no category.
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.UserContext(), id); err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(deletedMessage("Category"))
}

// CreateTag handles POST /api/tags
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body object{name=string,slug=string} true "New tag"
// @Success 201 {object} models.Tag
// @Failure 400 {object} models.ErrorResponse
// @Router /tags [post]
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	tag, err := s.taxonomyService.CreateTag(c.UserContext(), service.CreateTagInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.taxonomyService.ListTags(c.UserContext())
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.taxonomyService.GetTag(c.UserContext(), id)
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(tag)
}

// GetTagPosts handles GET /api/tags/:id/posts
// @Summary List the published posts carrying a tag
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Param page query int false "Page (1-based)"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} models.Page[models.Post]
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id}/posts [get]
func (s *Server) GetTagPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.postService.ListPostsByTag(c.UserContext(), id, parsePage(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(page)
}

// DeleteTag handles DELETE /api/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteTag(c.UserContext(), id); err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(deletedMessage("Tag"))
}
