package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/posts/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	res, err := s.engagementService.ToggleLike(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": res.Active, "like_count": res.Count})
}

// ToggleFavorite handles POST /api/posts/:id/favorite.
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	res, err := s.engagementService.ToggleFavorite(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"favorited": res.Active, "favorite_count": res.Count})
}

// GetLiked handles GET /api/posts/:id/liked. Anonymous callers are never
// liked, so the endpoint is public.
func (s *Server) GetLiked(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	liked, err := s.engagementService.IsLiked(c.UserContext(), optionalUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetFavorited handles GET /api/posts/:id/favorited.
func (s *Server) GetFavorited(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	favorited, err := s.engagementService.IsFavorited(c.UserContext(), optionalUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"favorited": favorited})
}
