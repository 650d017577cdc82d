package handlers

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthResponse reports the state of the system's dependencies.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version,omitempty"`
}

// HealthHandler checks the database and the seeded network.
type HealthHandler struct {
	db              *sql.DB
	providerEnabled bool
}

func NewHealthHandler(db *sql.DB, providerEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, providerEnabled: providerEnabled}
}

// Health answers GET /api/health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	services := make(map[string]string)
	overall := "healthy"

	// ============================================================================
	// CHECK: Database
	// ============================================================================
	if h.db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			services["database"] = "unhealthy: " + err.Error()
			overall = "degraded"
		} else {
			services["database"] = "healthy"
		}
	} else {
		services["database"] = "not_initialized"
		overall = "degraded"
	}

	// ============================================================================
	// CHECK: Transit network data
	// ============================================================================
	if h.db != nil && services["database"] == "healthy" {
		var count int
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stops").Scan(&count)
		if err != nil {
			services["network_data"] = "unhealthy: " + err.Error()
			overall = "degraded"
		} else if count == 0 {
			services["network_data"] = "empty"
			overall = "degraded"
		} else {
			services["network_data"] = "healthy"
		}
	} else {
		services["network_data"] = "unavailable"
	}

	// ============================================================================
	// CHECK: External directions provider
	// ============================================================================
	if h.providerEnabled {
		services["directions_provider"] = "configured"
	} else {
		services["directions_provider"] = "disabled"
	}

	statusCode := fiber.StatusOK
	if overall == "degraded" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
		Version:   os.Getenv("APP_VERSION"),
	})
}
