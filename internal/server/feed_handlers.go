package server

import (
	"strings"

	"aerohub/internal/feed"
	"aerohub/internal/vehicles"

	"github.com/gofiber/fiber/v2"
)

// BrowseLiveries handles GET /api/liveries. Query parameters: search,
// vehicleTypes (comma-separated), sort, limit, cursor, authorId,
// favoritesUserId. "favoritesUserId=me" resolves to the signed-in caller.
func (s *Server) BrowseLiveries(c *fiber.Ctx) error {
	q := feed.Query{
		Search: strings.TrimSpace(c.Query("search")),
		Sort:   c.Query("sort"),
		Limit:  c.QueryInt("limit", 0),
		Cursor: c.Query("cursor"),
	}

	if raw := c.Query("vehicleTypes"); raw != "" {
		for _, vt := range strings.Split(raw, ",") {
			vt = strings.TrimSpace(vt)
			if vt != "" {
				q.VehicleTypes = append(q.VehicleTypes, vt)
			}
		}
	}

	if authorID := c.QueryInt("authorId", 0); authorID > 0 {
		q.AuthorID = uint(authorID)
	}
	switch fav := c.Query("favoritesUserId"); {
	case fav == "me":
		// "my favorites" for a signed-out caller is an empty shelf, not
		// the global feed
		q.FavoritesUserID = optionalUserID(c)
		if q.FavoritesUserID == 0 {
			return c.JSON(feed.Page{Posts: []feed.PostSummary{}})
		}
	case fav != "":
		if id := c.QueryInt("favoritesUserId", 0); id > 0 {
			q.FavoritesUserID = uint(id)
		}
	}

	page, err := s.feedEngine.Browse(c.UserContext(), q)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetVehicleTypes handles GET /api/vehicle-types, listing the filterable
// type labels for the browse UI.
func (s *Server) GetVehicleTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"vehicle_types": vehicles.AllTypes})
}
