package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/shouna/internal/auth"
	"github.com/erazemk/shouna/internal/chat"
	"github.com/erazemk/shouna/internal/icons"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/model"
	webembed "github.com/erazemk/shouna/web"
)

// MaxCardTags is the number of tags shown on an inventory card.
const MaxCardTags = 3

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"icon":     icons.Lookup,
		"markdown": renderMarkdown,
		"dataURL": func(s string) template.URL {
			if strings.HasPrefix(s, "data:image/") {
				return template.URL(s)
			}
			return ""
		},
		"cardTags": func(tags []string) []string {
			if len(tags) > MaxCardTags {
				return tags[:MaxCardTags]
			}
			return tags
		},
		"locationTypeName": func(t string) string {
			switch t {
			case model.LocationTypeRoom:
				return "房间"
			case model.LocationTypeStorage:
				return "收纳容器"
			default:
				return t
			}
		},
		"fromAssistant": func(m model.ChatMessage) bool {
			return m.Sender == model.SenderAssistant
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"inventory.html",
		"item_new.html",
		"assistant.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with an explicit status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title    string
	Active   string
	AuthOn   bool
	Error    string
	Notice   string
	Fields   map[string]string
	Awaiting bool
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB         *sql.DB
	Inventory  *inventory.Inventory
	Analyzer   inventory.Analyzer
	Chat       *chat.Transcript
	Templates  *Templates
	Passphrase *auth.Passphrase
	JWTSecret  string

	// NotifyAnalysisFailure shows a notice when photo analysis fails
	// instead of leaving the form silently unchanged.
	NotifyAnalysisFailure bool
}

func (s *Server) page(title, active string) PageData {
	return PageData{
		Title:    title,
		Active:   active,
		AuthOn:   s.Passphrase.Enabled(),
		Awaiting: s.Chat != nil && s.Chat.Awaiting(),
	}
}
