package web

import (
	"net/http"

	"github.com/erazemk/shouna/internal/model"
)

// AssistantPage handles GET /assistant.
func (s *Server) AssistantPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "assistant.html", &struct {
		PageData
		Messages []model.ChatMessage
	}{
		PageData: s.page("收纳助手", "assistant"),
		Messages: s.Chat.Messages(),
	})
}

// AssistantSubmit handles POST /assistant. It waits for the reply and
// then shows the updated transcript.
func (s *Server) AssistantSubmit(w http.ResponseWriter, r *http.Request) {
	s.Chat.Send(r.Context(), r.FormValue("text"))
	http.Redirect(w, r, "/assistant", http.StatusSeeOther)
}
