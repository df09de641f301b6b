package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shouna/internal/chat"
	"github.com/erazemk/shouna/internal/imaging"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/model"
)

// AssistantHandler handles photo analysis and the advice chat.
type AssistantHandler struct {
	Inventory *inventory.Inventory
	Analyzer  inventory.Analyzer
	Chat      *chat.Transcript
}

type analyzeResponse struct {
	Analysis            *model.Analysis `json:"analysis"`
	SuggestedLocationID string          `json:"suggested_location_id,omitempty"`
	Image               string          `json:"image"`
}

type chatRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

type chatResponse struct {
	Messages []model.ChatMessage `json:"messages"`
	Awaiting bool                `json:"awaiting"`
}

// Analyze handles POST /api/analyze.
func (h *AssistantHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize)

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Analyzer.AnalyzeImage(r.Context(), photo.Data, photo.MIME)
	if err != nil {
		slog.Warn("analysis failed", "error", err)
		jsonError(w, http.StatusBadGateway, "image analysis failed")
		return
	}

	resp := analyzeResponse{Analysis: a, Image: photo.DataURL()}
	locations, err := h.Inventory.Locations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
	} else if loc, ok := inventory.MatchLocation(locations, a.SuggestedStorageType); ok {
		resp.SuggestedLocationID = loc.ID
	}

	jsonResponse(w, http.StatusOK, resp)
}

// Transcript handles GET /api/chat.
func (h *AssistantHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, chatResponse{
		Messages: h.Chat.Messages(),
		Awaiting: h.Chat.Awaiting(),
	})
}

// Send handles POST /api/chat.
func (h *AssistantHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "message too long")
		return
	}

	reply := h.Chat.Send(r.Context(), req.Text)
	if reply == nil {
		jsonError(w, http.StatusBadRequest, "text required")
		return
	}
	jsonResponse(w, http.StatusOK, reply)
}
