package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/inventory"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Inventory.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Summary *inventory.Summary
	}{
		PageData: s.page("仪表盘", "dashboard"),
		Summary:  summary,
	})
}
