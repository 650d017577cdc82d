package routes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/safarlahore/internal/handlers"
	"github.com/yourorg/safarlahore/internal/middleware"
	"github.com/yourorg/safarlahore/internal/routing"
	"github.com/yourorg/safarlahore/internal/transit"
)

// Register wires every endpoint onto the app.
func Register(app *fiber.App, db *sql.DB, store *transit.Store, planner *routing.Planner, providerEnabled bool) {
	// ============================================================================
	// PUBLIC API
	// ============================================================================
	api := app.Group("/api")

	// Health check (no rate limiting)
	healthHandler := handlers.NewHealthHandler(db, providerEnabled)
	api.Get("/health", healthHandler.Health)

	// ============================================================================
	// JOURNEY PLANNING
	// ============================================================================
	transitHandler := handlers.NewTransitHandler(planner)

	plan := api.Group("/transit")
	plan.Use(middleware.PlanningRateLimiter())

	plan.Post("/plan", transitHandler.PlanRoute)
	// POST /api/transit/plan
	// Body: {origin: {lat, lng}, destination: {lat, lng}, preference}

	plan.Post("/plan/waypoints", transitHandler.PlanWaypoints)
	// POST /api/transit/plan/waypoints
	// Body: {waypoints: [{lat, lng}, ...], preference} - visited in order

	plan.Get("/plan/stops", transitHandler.PlanBetweenStops)
	// GET /api/transit/plan/stops?from=ID&to=ID&preference=fastest

	// ============================================================================
	// NETWORK DATA (stops and routes)
	// ============================================================================
	stopsHandler := handlers.NewStopsHandler(store)

	api.Get("/stops", stopsHandler.GetNearbyStops)
	// GET /api/stops?lat=X&lng=Y&radius=500&limit=10

	api.Get("/stops/:id", stopsHandler.GetStopByID)
	// GET /api/stops/mb-01

	api.Get("/routes", stopsHandler.ListRoutes)
	// GET /api/routes

	api.Get("/routes/:id/stops", stopsHandler.GetRouteStops)
	// GET /api/routes/metro-bus/stops - stops in riding order

	// ============================================================================
	// CACHE & ADMIN
	// ============================================================================
	adminHandler := handlers.NewAdminHandler(planner)

	api.Get("/cache/stats", adminHandler.GetCacheStats)
	api.Delete("/cache", middleware.AdminRateLimiter(), adminHandler.ClearCache)
	api.Post("/admin/reload", middleware.AdminRateLimiter(), adminHandler.Reload)
}
