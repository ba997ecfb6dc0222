package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"transport-backend/internal/cache"
	"transport-backend/internal/config"
	"transport-backend/internal/database"
	"transport-backend/internal/db"
	"transport-backend/internal/export"
	"transport-backend/internal/handlers"
	"transport-backend/internal/health"
	h "transport-backend/internal/http"
	"transport-backend/internal/middleware"
	"transport-backend/internal/render"
	"transport-backend/internal/repositories"
	"transport-backend/internal/services"
	"transport-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (serving without cache)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)

	// Initialize services
	invoiceService := services.NewInvoiceService(invoiceRepo)
	customerService := services.NewCustomerService(customerRepo)
	dashboardService := services.NewDashboardService(invoiceRepo, customerRepo)

	// Initialize the export pipeline: headless Chrome capture -> PDF encoder
	surface := render.NewChromedpSurface(cfg.Render)
	defer surface.Close()
	encoder := export.NewPDFEncoder(cfg.Export)

	var archiver *export.Archiver
	if cfg.Archive.Enabled {
		var err error
		archiver, err = export.NewArchiver(cfg.Archive)
		if err != nil {
			log.Printf("[Archive] disabled: %v", err)
		} else {
			log.Printf("[Archive] exported PDFs will be stored in bucket %s", cfg.Archive.Bucket)
		}
	}
	exporter := export.NewExporter(surface, encoder, archiver)

	// Initialize handlers
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, exporter)
	customerHandler := handlers.NewCustomerHandler(customerService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router and wrap with panic recovery and CORS
	router := h.NewRouter(invoiceHandler, customerHandler, dashboardHandler, healthHandler)
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(corsMiddleware(router))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
