package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/yourorg/safarlahore/internal/cache"
	"github.com/yourorg/safarlahore/internal/config"
	appdb "github.com/yourorg/safarlahore/internal/db"
	"github.com/yourorg/safarlahore/internal/directions"
	"github.com/yourorg/safarlahore/internal/middleware"
	"github.com/yourorg/safarlahore/internal/routes"
	"github.com/yourorg/safarlahore/internal/routing"
	"github.com/yourorg/safarlahore/internal/transit"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.GlobalRateLimiter())

	cache.InitCaches()
	defer cache.StopCaches()

	// ============================================================================
	// DB CONNECTION
	// ============================================================================
	var dbReady bool

	go func() {
		for {
			db, err := appdb.Connect()
			if err != nil {
				log.Printf("db connect error: %v (retrying in 5s)", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if err := appdb.EnsureSchema(db); err != nil {
				log.Printf("ensure schema error: %v (retrying in 5s)", err)
				time.Sleep(5 * time.Second)
				continue
			}

			store := transit.NewStore(db)

			// The provider is optional; without a base URL every plan is
			// computed on the local network.
			provider := directions.NewClient(cfg.Provider)
			var planner *routing.Planner
			if provider != nil {
				planner = routing.NewPlanner(store, provider, cfg)
				log.Printf("🌐 External directions provider enabled: %s", cfg.Provider.BaseURL)
			} else {
				planner = routing.NewPlanner(store, nil, cfg)
				log.Println("🗺️ No external provider configured, planning on the local network only")
			}

			routes.Register(app, db, store, planner, provider != nil)
			dbReady = true
			log.Printf("✅ Database ready and routes registered")
			return
		}
	}()

	// Wait briefly for DB to be ready
	for i := 0; i < 10 && !dbReady; i++ {
		time.Sleep(500 * time.Millisecond)
	}

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Shutdown signal received, closing server...")

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error closing server: %v", err)
		}
		cache.StopCaches()

		log.Println("✅ Server closed")
		os.Exit(0)
	}()

	log.Printf("🚀 Server listening on :%d", cfg.Server.Port)
	log.Println("📍 Endpoints:")
	log.Println("   POST /api/transit/plan           - Plan a journey between two points")
	log.Println("   POST /api/transit/plan/waypoints - Plan through ordered waypoints")
	log.Println("   GET  /api/transit/plan/stops     - Plan between two known stops")
	log.Println("   GET  /api/stops                  - Stops near a coordinate")
	log.Println("   GET  /api/routes                 - Transit routes")
	log.Println("   GET  /api/health                 - Health check")

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}
