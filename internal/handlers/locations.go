package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pickmate-wms/pickmatego/internal/models"
)

// listLocations returns stock locations, filterable by usage and by a
// name/barcode search term
func (r *Router) listLocations(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.StockLocation{}).Where("active = ?", true)

	if usage := req.URL.Query().Get("usage"); usage != "" {
		query = query.Where("usage = ?", usage)
	}
	if q := req.URL.Query().Get("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("complete_name ILIKE ? OR barcode ILIKE ?", like, like)
	}

	var locations []models.StockLocation
	if err := query.Order("complete_name").Find(&locations).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch locations")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

// getLocation returns a location with its children
func (r *Router) getLocation(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, _ := strconv.ParseInt(vars["id"], 10, 64)

	var loc models.StockLocation
	if err := r.db.Preload("Children").First(&loc, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Location not found")
		return
	}
	respondJSON(w, http.StatusOK, loc)
}
