// ============================================================================
// NETWORK DATA ENDPOINTS - SafarLahore
// ============================================================================
// GET /api/stops            - stops near a coordinate
// GET /api/stops/:id        - one stop by id
// GET /api/routes           - all routes
// GET /api/routes/:id/stops - ordered stops of a route
// ============================================================================

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/routing"
	"github.com/yourorg/safarlahore/internal/transit"
	"github.com/yourorg/safarlahore/internal/validation"
)

// StopsHandler serves read-only network data.
type StopsHandler struct {
	store *transit.Store
}

func NewStopsHandler(store *transit.Store) *StopsHandler {
	return &StopsHandler{store: store}
}

// GetNearbyStops answers GET /api/stops?lat=X&lng=Y&radius=500&limit=10.
func (h *StopsHandler) GetNearbyStops(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat", 0)
	lng := c.QueryFloat("lng", 0)
	radius := c.QueryInt("radius", 500)
	limit := c.QueryInt("limit", 10)

	if err := validation.ValidateCoordinatePair(lat, lng, "query"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: err.Error(),
		})
	}
	if radius <= 0 || radius > 10000 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Radius must be between 1 and 10000 meters",
		})
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	stops, err := h.store.FindNearest(lat, lng, radius, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error finding nearby stops",
		})
	}
	if stops == nil {
		stops = []models.NearbyStop{}
	}
	return c.JSON(stops)
}

// GetStopByID answers GET /api/stops/:id.
func (h *StopsHandler) GetStopByID(c *fiber.Ctx) error {
	stop, err := h.store.GetStop(c.Params("id"))
	if err != nil {
		if routing.IsStopNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
				Error: "Stop not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error loading stop",
		})
	}
	return c.JSON(stop)
}

// ListRoutes answers GET /api/routes.
func (h *StopsHandler) ListRoutes(c *fiber.Ctx) error {
	routes, err := h.store.ListRoutes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error loading routes",
		})
	}
	if routes == nil {
		routes = []models.Route{}
	}
	return c.JSON(routes)
}

// GetRouteStops answers GET /api/routes/:id/stops.
func (h *StopsHandler) GetRouteStops(c *fiber.Ctx) error {
	routeStops, err := h.store.ListRouteStops(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error loading route stops",
		})
	}
	if len(routeStops) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Route not found or has no stops",
		})
	}
	return c.JSON(routeStops)
}
