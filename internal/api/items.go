package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/imaging"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/model"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Inventory *inventory.Inventory
}

// List handles GET /api/items. The optional location and q parameters
// filter the result without changing the shared view.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Inventory.Items(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	q := r.URL.Query()
	jsonResponse(w, http.StatusOK, inventory.Filter(items, q.Get("location"), q.Get("q")))
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize*2)

	var req model.NewItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Inventory.AddItem(r.Context(), req)
	if err != nil {
		if validationError(w, err) {
			return
		}
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	item.Image = ""
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Inventory.Item(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	locationName, err := h.Inventory.LocationName(r.Context(), item.LocationID)
	if err != nil {
		slog.Error("failed to resolve location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}

	item.Image = ""
	jsonResponse(w, http.StatusOK, map[string]any{
		"item":          item,
		"location_name": locationName,
	})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Inventory.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if payload == "" {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}
	imaging.Serve(w, r, payload)
}
