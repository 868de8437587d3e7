package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pickmate-wms/pickmatego/internal/middleware"
	"github.com/pickmate-wms/pickmatego/internal/services/picking"
)

// MarkTodoRequest carries the pickings selected in the list view
type MarkTodoRequest struct {
	PickingIDs []int64 `json:"picking_ids"`
}

// openMarkTodo builds the wizard: partitions the selection into draft
// pickings (actionable) and the non-draft rest (shown for information only)
func (r *Router) openMarkTodo(w http.ResponseWriter, req *http.Request) {
	var markReq MarkTodoRequest
	if err := json.NewDecoder(req.Body).Decode(&markReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(markReq.PickingIDs) == 0 {
		respondError(w, http.StatusBadRequest, "No pickings selected")
		return
	}

	userID := ""
	if claims := middleware.ClaimsFromContext(req.Context()); claims != nil {
		userID, _ = claims["id"].(string)
	}

	view, err := r.pickingSvc.Open(userID, markReq.PickingIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to open wizard")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// confirmMarkTodo transitions the wizard's draft pickings to todo
func (r *Router) confirmMarkTodo(w http.ResponseWriter, req *http.Request) {
	wizardID := mux.Vars(req)["wizard_id"]

	confirmed, err := r.pickingSvc.Confirm(wizardID)
	if err != nil {
		switch {
		case errors.Is(err, picking.ErrWizardNotFound):
			respondError(w, http.StatusNotFound, "Wizard not found")
		case errors.Is(err, picking.ErrNoDraftPickings):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to confirm pickings")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Pickings marked as todo",
		"pickings": confirmed,
	})
}

// cancelMarkTodo discards the wizard without touching any picking
func (r *Router) cancelMarkTodo(w http.ResponseWriter, req *http.Request) {
	wizardID := mux.Vars(req)["wizard_id"]

	if err := r.pickingSvc.Cancel(wizardID); err != nil {
		if errors.Is(err, picking.ErrWizardNotFound) {
			respondError(w, http.StatusNotFound, "Wizard not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to cancel wizard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Wizard cancelled"})
}
