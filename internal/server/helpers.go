package server

import (
	"strings"
	"unicode"

	"vidtube/internal/media"
	"vidtube/internal/models"
	"vidtube/internal/service"
	"vidtube/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

// parsePagination extracts page and limit, applying the listing defaults
// and the limit cap. Unparseable values fall back to the defaults.
func parsePagination(c *fiber.Ctx) Pagination {
	page, limit := service.NormalizePage(
		c.QueryInt("page", service.DefaultPage),
		c.QueryInt("limit", service.DefaultLimit),
	)
	return Pagination{Page: page, Limit: limit}
}

// parseID extracts a route parameter as an entity reference. The error
// names the parameter (e.g. "videoId" -> "Invalid video ID").
func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return validation.ParseReference(humanizeParam(param), c.Params(param))
}

// callerID returns the authenticated user set by AuthRequired.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals("userID").(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, models.NewUnauthorizedError("Unauthorized request")
	}
	return id, nil
}

// callerClaims returns the token claims set by AuthRequired.
func callerClaims(c *fiber.Ctx) *service.TokenClaims {
	claims, _ := c.Locals("tokenClaims").(*service.TokenClaims)
	return claims
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "playlistId" -> "playlist ID".
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

// splitCamel splits a camelCase string into words.
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

// bindBody decodes a JSON, urlencoded or multipart body into out. An empty
// body leaves out untouched.
func bindBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// formFile returns the uploaded file under field, or nil when the request
// carries none.
func formFile(c *fiber.Ctx, field string) *media.File {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return media.FromMultipart(fh)
}
