package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/safarlahore/internal/cache"
	"github.com/yourorg/safarlahore/internal/routing"
)

// ============================================================================
// CACHE & ADMIN ENDPOINTS
// ============================================================================
// GET    /api/cache/stats - cache health for the dashboard
// DELETE /api/cache       - clear one cache or all of them
// POST   /api/admin/reload - drop caches and graph snapshots after re-seeding

// AdminHandler owns the cache and graph maintenance endpoints.
type AdminHandler struct {
	planner *routing.Planner
}

func NewAdminHandler(planner *routing.Planner) *AdminHandler {
	return &AdminHandler{planner: planner}
}

// GetCacheStats returns statistics for every active cache.
func (h *AdminHandler) GetCacheStats(c *fiber.Ctx) error {
	stats := cache.GetAllCacheStats()

	var totalItems, totalValid, totalExpired int
	var totalMemoryMB float64

	for _, s := range stats {
		totalItems += s.TotalItems
		totalValid += s.ValidItems
		totalExpired += s.ExpiredItems
		totalMemoryMB += s.MemoryEstMB
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"summary": fiber.Map{
			"total_items":   totalItems,
			"valid_items":   totalValid,
			"expired_items": totalExpired,
			"memory_est_mb": totalMemoryMB,
		},
		"caches": stats,
	})
}

// ClearCache clears a specific cache or all of them.
// DELETE /api/cache?type=stops|routes|transfers|plans|all
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	cacheType := c.Query("type", "all")

	var cleared int

	switch cacheType {
	case "stops":
		if cache.StopsCache != nil {
			cache.StopsCache.Clear()
			cleared = 1
		}
	case "routes":
		if cache.RoutesCache != nil {
			cache.RoutesCache.Clear()
			cleared = 1
		}
	case "transfers":
		if cache.TransfersCache != nil {
			cache.TransfersCache.Clear()
			cleared = 1
		}
	case "plans":
		if cache.PlanCache != nil {
			cache.PlanCache.Clear()
			cleared = 1
		}
	case "all":
		cache.ClearAllCaches()
		cleared = 4
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cache type. Use: stops, routes, transfers, plans, or all",
		})
	}

	// Network caches feed the routing graphs; dropping them means the
	// snapshots must be rebuilt too.
	if cacheType != "plans" && h.planner != nil {
		h.planner.InvalidateGraphs()
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Cache cleared",
		"type":    cacheType,
		"cleared": cleared,
	})
}

// Reload drops every cache and graph snapshot so the next request sees
// freshly seeded data. POST /api/admin/reload
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	cache.ClearAllCaches()
	if h.planner != nil {
		h.planner.InvalidateGraphs()
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Caches and routing graphs invalidated",
	})
}
