package server

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "postId" -> "Invalid post ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "postId" -> "post ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parsePage reads ?page and ?per_page, clamped by PageRequest.Normalize.
func parsePage(c *fiber.Ctx) models.PageRequest {
	return models.PageRequest{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", models.DefaultPerPage),
	}.Normalize()
}

// queryUint reads an optional positive integer filter; anything else is 0.
func queryUint(c *fiber.Ctx, key string) uint {
	v := c.QueryInt(key, 0)
	if v <= 0 {
		return 0
	}
	return uint(v)
}

// parseBody decodes the JSON body into dst. An empty body leaves dst untouched.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// actorID returns the acting user from the decoded body, falling back to the
// ?user_id query parameter, and records it on the request context.
func actorID(c *fiber.Ctx, fromBody uint) uint {
	id := fromBody
	if id == 0 {
		id = queryUint(c, "user_id")
	}
	if id != 0 {
		middleware.WithUserID(c, id)
	}
	return id
}

// respondWithAppError maps err to its status. Anything that is not an
// AppError is treated as internal and its detail stays in the logs.
func respondWithAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	status := models.StatusFor(appErr)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
	}
	return models.RespondWithError(c, status, appErr)
}

func deletedMessage(resource string) fiber.Map {
	return fiber.Map{"message": resource + " deleted successfully"}
}
