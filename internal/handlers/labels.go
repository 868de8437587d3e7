package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pickmate-wms/pickmatego/internal/models"
	"github.com/pickmate-wms/pickmatego/internal/services/barcode"
	"github.com/pickmate-wms/pickmatego/internal/services/printer"
)

// LabelRequest selects the locations to print
type LabelRequest struct {
	LocationIDs []int64 `json:"location_ids"`
}

// printLocationLabels handles the label PDF generation request
func (r *Router) printLocationLabels(w http.ResponseWriter, req *http.Request) {
	var labelReq LabelRequest
	if err := json.NewDecoder(req.Body).Decode(&labelReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var locations []models.StockLocation
	if len(labelReq.LocationIDs) > 0 {
		if err := r.db.Where("id IN ?", labelReq.LocationIDs).
			Order("complete_name").Find(&locations).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch locations")
			return
		}
	}

	// JSON preview: the composed pages, with symbol image references
	// resolved by the /report/barcode endpoint
	if req.URL.Query().Get("format") == "json" {
		respondJSON(w, http.StatusOK, printer.BuildPages(locations))
		return
	}

	pdfBytes, err := printer.GenerateLocationLabelsPDF(locations)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	// An empty selection prints nothing
	if len(pdfBytes) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Set headers for download
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"location_labels_%d.pdf\"", len(locations)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))

	w.Write(pdfBytes)
}

// barcodeImage serves the symbol images the label templates reference:
// /report/barcode?type=Code128&width=600&height=100&value=LOC001
func (r *Router) barcodeImage(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	symType := q.Get("type")
	if symType == "" {
		symType = barcode.TypeCode128
	}
	width, _ := strconv.Atoi(q.Get("width"))
	height, _ := strconv.Atoi(q.Get("height"))

	// The value is used as-is, malformed input surfaces as an encoder error
	img, err := barcode.Generate(symType, q.Get("value"), width, height)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to generate barcode: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Write(img)
}
