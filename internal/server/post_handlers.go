package server

import (
	"aerohub/internal/models"
	"aerohub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPost handles GET /api/posts/:id. A missing or malformed id resolves to
// a null body, not an error object; the client treats both as "gone".
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(nil)
	}

	detail, err := s.postService.GetPost(c.UserContext(), uint(id), optionalUserID(c))
	if err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(nil)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

type postRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Vehicles    []string              `json:"vehicles"`
	ImageKeys   []string              `json:"image_keys"`
	Liveries    []service.LiveryInput `json:"liveries"`
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		AuthorID:  currentUserID(c),
		Vehicles:  req.Vehicles,
		ImageKeys: req.ImageKeys,
		Liveries:  req.Liveries,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}

	post, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": post.ID})
}

// UpdatePost handles PUT /api/posts/:id. Absent fields are left untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		CallerID:    currentUserID(c),
		PostID:      id,
		Title:       req.Title,
		Description: req.Description,
		Vehicles:    req.Vehicles,
		ImageKeys:   req.ImageKeys,
		Liveries:    req.Liveries,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"id": post.ID})
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	imageKeys, err := s.postService.DeletePost(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":                   id,
		"image_keys_to_delete": imageKeys,
	})
}
