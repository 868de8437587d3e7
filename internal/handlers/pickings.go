package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pickmate-wms/pickmatego/internal/models"
)

// listPickings returns transfer orders with the list-view search filters:
// state, backorder presence and source document
func (r *Router) listPickings(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.StockPicking{}).Preload("Location")

	if state := req.URL.Query().Get("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if origin := req.URL.Query().Get("origin"); origin != "" {
		query = query.Where("origin = ?", origin)
	}
	switch req.URL.Query().Get("backordered") {
	case "true":
		query = query.Where("backorder_id IS NOT NULL")
	case "false":
		query = query.Where("backorder_id IS NULL")
	}

	var pickings []models.StockPicking
	if err := query.Order("scheduled_date").Find(&pickings).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch pickings")
		return
	}
	respondJSON(w, http.StatusOK, pickings)
}

// getPicking returns a single transfer order
func (r *Router) getPicking(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, _ := strconv.ParseInt(vars["id"], 10, 64)

	var p models.StockPicking
	if err := r.db.Preload("Location").Preload("Backorder").First(&p, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Picking not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}
