package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/inventory"
)

// InventoryHandler handles the shared inventory view and the dashboard.
type InventoryHandler struct {
	Inventory *inventory.Inventory
}

type updateViewRequest struct {
	LocationID *string `json:"location_id" validate:"omitempty,max=64"`
	Query      *string `json:"query" validate:"omitempty,max=200"`
}

// View handles GET /api/view.
func (h *InventoryHandler) View(w http.ResponseWriter, r *http.Request) {
	v, err := h.Inventory.View(r.Context())
	if err != nil {
		slog.Error("failed to build view", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build view")
		return
	}
	jsonResponse(w, http.StatusOK, v)
}

// UpdateView handles PUT /api/view. Omitted fields keep their value; an
// empty location_id clears the selection.
func (h *InventoryHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var req updateViewRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "location_id or query too long")
		return
	}

	if req.LocationID != nil {
		h.Inventory.SelectLocation(*req.LocationID)
	}
	if req.Query != nil {
		h.Inventory.SetSearch(*req.Query)
	}

	h.View(w, r)
}

// Dashboard handles GET /api/dashboard.
func (h *InventoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.Inventory.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}
