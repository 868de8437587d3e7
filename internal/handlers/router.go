package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pickmate-wms/pickmatego/internal/config"
	"github.com/pickmate-wms/pickmatego/internal/database"
	"github.com/pickmate-wms/pickmatego/internal/middleware"
	"github.com/pickmate-wms/pickmatego/internal/models"
	"github.com/pickmate-wms/pickmatego/internal/services/odoo"
	"github.com/pickmate-wms/pickmatego/internal/services/picking"
	"github.com/pickmate-wms/pickmatego/internal/websocket"
)

// Router wraps the mux router and database
type Router struct {
	*mux.Router
	db         *database.DB
	cfg        *config.Config
	pickingSvc *picking.Service
	odooSvc    *odoo.SyncService
	hub        *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, pickingSvc *picking.Service) *Router {
	r := &Router{
		Router:     mux.NewRouter(),
		db:         db,
		cfg:        cfg,
		pickingSvc: pickingSvc,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	authRequired := middleware.Auth(cfg.JWTSecret)

	// Bulk mark-todo wizard, stock managers only. Registered before the
	// generic /api subrouter so the more specific prefix wins.
	wizard := r.PathPrefix("/api/pickings/mark-todo").Subrouter()
	wizard.Use(authRequired, middleware.RequireRole(models.RoleStockManager))
	wizard.HandleFunc("", r.openMarkTodo).Methods("POST")
	wizard.HandleFunc("/{wizard_id}/confirm", r.confirmMarkTodo).Methods("POST")
	wizard.HandleFunc("/{wizard_id}/cancel", r.cancelMarkTodo).Methods("POST")

	// Browse routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authRequired)
	api.HandleFunc("/status", r.getStatus).Methods("GET")
	api.HandleFunc("/locations", r.listLocations).Methods("GET")
	api.HandleFunc("/locations/labels", r.printLocationLabels).Methods("POST")
	api.HandleFunc("/locations/{id:[0-9]+}", r.getLocation).Methods("GET")
	api.HandleFunc("/pickings", r.listPickings).Methods("GET")
	api.HandleFunc("/pickings/{id:[0-9]+}", r.getPicking).Methods("GET")

	// Barcode symbol images referenced by the label templates (protected)
	report := r.PathPrefix("/report").Subrouter()
	report.Use(authRequired)
	report.HandleFunc("/barcode", r.barcodeImage).Methods("GET")

	// Realtime picking state events
	r.HandleFunc("/ws", r.serveWs).Methods("GET")

	return r
}

// SetOdooService registers the upstream sync service for API endpoints
func (r *Router) SetOdooService(svc *odoo.SyncService) {
	r.odooSvc = svc
}

// SetHub registers the websocket hub
func (r *Router) SetHub(hub *websocket.Hub) {
	r.hub = hub
}

// Handler returns the root http.Handler
func (r *Router) Handler() http.Handler {
	return r.Router
}

func (r *Router) serveWs(w http.ResponseWriter, req *http.Request) {
	if r.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "Realtime events not available")
		return
	}
	websocket.ServeWs(r.hub, w, req)
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	odooSync := "disabled"
	if r.odooSvc != nil && r.odooSvc.Enabled() {
		odooSync = "enabled"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "running",
		"version":   "1.0.0",
		"odoo_sync": odooSync,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
