package web

import (
	"net/http"

	"github.com/erazemk/shouna/internal/metrics"
	webembed "github.com/erazemk/shouna/web"
)

// NewRouter creates the web page router with all page routes registered.
// s.Templates is loaded when nil.
func NewRouter(s *Server) (http.Handler, error) {
	if s.Templates == nil {
		templates, err := LoadTemplates()
		if err != nil {
			return nil, err
		}
		s.Templates = templates
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(s.Passphrase, s.JWTSecret, s.DB)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /inventory", cookieAuth(http.HandlerFunc(s.InventoryPage)))
	mux.Handle("POST /locations", cookieAuth(http.HandlerFunc(s.LocationCreateSubmit)))

	mux.Handle("GET /items/new", cookieAuth(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /items/new", cookieAuth(http.HandlerFunc(s.ItemNewSubmit)))
	mux.Handle("GET /items/{id}/image", cookieAuth(http.HandlerFunc(s.ItemImageGet)))

	mux.Handle("GET /assistant", cookieAuth(http.HandlerFunc(s.AssistantPage)))
	mux.Handle("POST /assistant", cookieAuth(http.HandlerFunc(s.AssistantSubmit)))

	return metrics.Middleware(mux), nil
}
