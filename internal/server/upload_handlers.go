package server

import (
	"fmt"
	"strings"

	"aerohub/internal/models"
	"aerohub/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/webp": "webp",
	"image/png":  "png",
	"image/jpeg": "jpg",
}

// CreateUpload handles POST /api/uploads. It mints an object key and a
// short-lived presigned PUT URL; the client uploads directly to storage and
// then references the key when creating the post.
func (s *Server) CreateUpload(c *fiber.Ctx) error {
	// operational kill switch for when the storage provider misbehaves
	if !s.flags.Enabled("uploads", currentUserID(c), true) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewDependencyError("Uploads are temporarily disabled", nil))
	}

	var req struct {
		ContentType string `json:"content_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported content type"))
	}

	key := fmt.Sprintf("uploads/%d/%s.%s", currentUserID(c), uuid.New().String(), ext)
	url, err := s.store.PresignPut(c.UserContext(), key, contentType, storage.UploadURLTTL)
	if err != nil {
		return respondServiceError(c, models.NewDependencyError("object storage", err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key":        key,
		"upload_url": url,
	})
}
