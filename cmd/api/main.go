package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pickmate-wms/pickmatego/internal/config"
	"github.com/pickmate-wms/pickmatego/internal/database"
	"github.com/pickmate-wms/pickmatego/internal/handlers"
	"github.com/pickmate-wms/pickmatego/internal/models"
	"github.com/pickmate-wms/pickmatego/internal/services/odoo"
	"github.com/pickmate-wms/pickmatego/internal/services/picking"
	"github.com/pickmate-wms/pickmatego/internal/websocket"
)

// Abandoned wizards are vacuumed after this age, checked every few minutes
const (
	wizardMaxAge         = time.Hour
	wizardVacuumInterval = 10 * time.Minute
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.StockLocation{},
		&models.StockPicking{},
		&models.MarkTodoWizard{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Realtime hub for picking state events
	hub := websocket.NewHub()
	go hub.Run()

	// 5. Mark-todo wizard service
	pickingSvc := picking.NewService(picking.NewGormStore(db))
	pickingSvc.OnConfirmed(func(confirmed []models.StockPicking) {
		hub.Broadcast(map[string]interface{}{
			"type":     "PICKING_STATE_CHANGED",
			"state":    models.PickingStateConfirmed,
			"pickings": confirmed,
		})
	})

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, cfg, pickingSvc)
	router.SetHub(hub)

	// 7. Start Odoo Sync Service (Background)
	odooService := odoo.NewSyncService(db, cfg.Odoo)
	odooService.Start()
	router.SetOdooService(odooService)

	if odooService.Enabled() {
		// Mirror confirmed transitions upstream
		pickingSvc.OnConfirmed(func(confirmed []models.StockPicking) {
			ids := make([]int64, 0, len(confirmed))
			for _, p := range confirmed {
				ids = append(ids, p.ID)
			}
			go odooService.PushConfirm(ids)
		})
	}

	// 8. Vacuum abandoned wizard working sets
	go func() {
		ticker := time.NewTicker(wizardVacuumInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := pickingSvc.Vacuum(wizardMaxAge); err != nil {
				log.Printf("Wizard vacuum error: %v", err)
			} else if n > 0 {
				log.Printf("🧹 Vacuumed %d abandoned wizards", n)
			}
		}
	}()

	// 9. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(),
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Stop Odoo sync service
	odooService.Stop()

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
