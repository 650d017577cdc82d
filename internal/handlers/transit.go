// ============================================================================
// JOURNEY PLANNING ENDPOINTS - SafarLahore
// ============================================================================
// POST /api/transit/plan            - point-to-point journey
// POST /api/transit/plan/waypoints  - ordered multi-stop journey
// GET  /api/transit/plan/stops      - journey between two known stops
// ============================================================================

package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/safarlahore/internal/cache"
	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/routing"
)

// TransitHandler serves journey planning requests.
type TransitHandler struct {
	planner  *routing.Planner
	validate *validator.Validate
}

// NewTransitHandler wires the planner into the HTTP layer.
func NewTransitHandler(planner *routing.Planner) *TransitHandler {
	return &TransitHandler{
		planner:  planner,
		validate: validator.New(),
	}
}

// PlanRoute answers POST /api/transit/plan.
func (h *TransitHandler) PlanRoute(c *fiber.Ctx) error {
	var req models.PlanRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid coordinates or preference: " + err.Error(),
		})
	}

	pref := req.Preference.OrDefault()
	key := planCacheKey(pref, req.Origin, req.Destination)
	if cache.PlanCache != nil {
		if cached, found := cache.PlanCache.Get(key); found {
			if route, ok := cached.(*models.PlannedRoute); ok {
				return c.JSON(route)
			}
		}
	}

	route := h.planner.PlanRoute(c.Context(), req.Origin, req.Destination, pref)

	if cache.PlanCache != nil {
		cache.PlanCache.Set(key, route)
	}
	return c.JSON(route)
}

// PlanWaypoints answers POST /api/transit/plan/waypoints.
func (h *TransitHandler) PlanWaypoints(c *fiber.Ctx) error {
	var req models.PlanWaypointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid waypoints: " + err.Error(),
		})
	}

	route, err := h.planner.PlanWaypoints(c.Context(), req.Waypoints, req.Preference.OrDefault())
	if err != nil {
		if errors.Is(err, routing.ErrNotEnoughWaypoints) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error planning journey",
		})
	}
	return c.JSON(route)
}

// PlanBetweenStops answers GET /api/transit/plan/stops?from=ID&to=ID.
func (h *TransitHandler) PlanBetweenStops(c *fiber.Ctx) error {
	fromID := c.Query("from")
	toID := c.Query("to")
	if fromID == "" || toID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Missing from or to stop id",
		})
	}
	pref := models.Preference(c.Query("preference")).OrDefault()

	route, err := h.planner.PlanBetweenStops(c.Context(), fromID, toID, pref)
	if err != nil {
		if routing.IsStopNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
				Error: "Stop not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Error planning journey",
		})
	}
	return c.JSON(route)
}

// planCacheKey rounds coordinates to ~1m so nearby repeat requests share
// an entry.
func planCacheKey(pref models.Preference, origin, dest models.Coordinate) string {
	return fmt.Sprintf("plan:%s:%.5f,%.5f:%.5f,%.5f",
		pref, origin.Lat, origin.Lng, dest.Lat, dest.Lng)
}
