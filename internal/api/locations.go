package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/inventory"
)

// LocationsHandler handles location endpoints.
type LocationsHandler struct {
	Inventory *inventory.Inventory
}

type createLocationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Inventory.Locations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "name required (max 100 characters)")
		return
	}

	loc, err := h.Inventory.AddLocation(r.Context(), req.Name)
	if err != nil {
		slog.Error("failed to create location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create location")
		return
	}
	if loc == nil {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	jsonResponse(w, http.StatusCreated, loc)
}
