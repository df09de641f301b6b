package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/model"
)

// InventoryPage handles GET /inventory. The location and q parameters,
// when present, update the shared selection and search before rendering.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("location") {
		s.Inventory.SelectLocation(q.Get("location"))
	}
	if q.Has("q") {
		s.Inventory.SetSearch(q.Get("q"))
	}

	view, err := s.Inventory.View(r.Context())
	if err != nil {
		slog.Error("failed to build inventory view", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	locations, err := s.Inventory.Locations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		View         *inventory.View
		Locations    []model.Location
		LocationName func(string) string
	}{
		PageData:     s.page("库存", "inventory"),
		View:         view,
		Locations:    locations,
		LocationName: inventory.LocationNames(locations),
	})
}

// LocationCreateSubmit handles POST /locations.
func (s *Server) LocationCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Inventory.AddLocation(r.Context(), r.FormValue("name")); err != nil {
		slog.Error("failed to create location", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}
