package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/shouna/internal/imaging"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/model"
)

// Draft form actions.
const (
	actionAnalyze = "analyze"
	actionAddTag  = "add_tag"
	actionSave    = "save"
)

type itemFormData struct {
	PageData
	Draft     *inventory.Draft
	Locations []model.Location
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	locations, err := s.Inventory.Locations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_new.html", &itemFormData{
		PageData:  s.page("添加物品", "new"),
		Draft:     inventory.NewDraft(locations),
		Locations: locations,
	})
}

// ItemNewSubmit handles POST /items/new. The form carries the whole draft;
// the action field selects what to do with it.
func (s *Server) ItemNewSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize*3)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "file too large or invalid form", http.StatusBadRequest)
		return
	}

	locations, err := s.Inventory.Locations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := &itemFormData{
		PageData:  s.page("添加物品", "new"),
		Draft:     draftFromForm(r),
		Locations: locations,
	}

	photo := s.attachPhoto(r, data)

	switch r.FormValue("action") {
	case actionAnalyze:
		s.analyzePhoto(r, data, photo)
	case actionAddTag:
		data.Draft.AddTag(r.FormValue("new_tag"))
	case actionSave:
		if data.Error == "" && s.saveDraft(w, r, data) {
			return
		}
	default:
		// Tag chips submit their own remove_tag value. A submit without an
		// action adds whatever is in the tag input.
		if tag := r.FormValue("remove_tag"); tag != "" {
			data.Draft.RemoveTag(tag)
		} else {
			data.Draft.AddTag(r.FormValue("new_tag"))
		}
	}

	status := http.StatusOK
	if data.Error != "" || len(data.Fields) > 0 {
		status = http.StatusBadRequest
	}
	s.Templates.RenderStatus(w, status, "item_new.html", data)
}

// attachPhoto processes an uploaded photo into the draft's image. It
// returns nil when no photo was uploaded.
func (s *Server) attachPhoto(r *http.Request, data *itemFormData) *imaging.Photo {
	file, _, err := r.FormFile("photo")
	if err != nil {
		return nil
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		data.Error = "照片格式不支持（仅限 JPEG、PNG、WebP）。"
		return nil
	}
	data.Draft.Image = photo.DataURL()
	return photo
}

func (s *Server) analyzePhoto(r *http.Request, data *itemFormData, photo *imaging.Photo) {
	if photo == nil && data.Error == "" && data.Draft.Image != "" {
		if b, mime, err := imaging.DecodeDataURL(data.Draft.Image); err == nil {
			photo = &imaging.Photo{Data: b, MIME: mime}
		}
	}
	if photo == nil {
		if data.Error == "" {
			data.Error = "请选择一张照片。"
		}
		return
	}

	if err := data.Draft.Analyze(r.Context(), s.Analyzer, photo.Data, photo.MIME, data.Locations); err != nil {
		slog.Warn("photo analysis failed", "error", err)
		if s.NotifyAnalysisFailure {
			data.Notice = "图片识别失败，请手动填写物品信息。"
		}
	}
}

func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request, data *itemFormData) bool {
	if _, err := s.Inventory.AddItem(r.Context(), data.Draft.Item()); err != nil {
		var verr *inventory.ValidationError
		if errors.As(err, &verr) {
			data.Fields = verr.Fields
			if _, ok := verr.Fields["image"]; ok {
				data.Draft.Image = ""
			}
			return false
		}
		slog.Error("failed to create item", "error", err)
		data.Error = "保存失败，请重试。"
		return false
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
	return true
}

func draftFromForm(r *http.Request) *inventory.Draft {
	d := &inventory.Draft{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		LocationID:  r.FormValue("location_id"),
		Description: strings.TrimSpace(r.FormValue("description")),
		Image:       r.FormValue("image"),
		Tags:        []string{},
	}
	if !imaging.IsDataURL(d.Image) {
		d.Image = ""
	}
	d.Quantity, _ = strconv.Atoi(r.FormValue("quantity"))
	for _, tag := range r.Form["tags"] {
		d.AddTag(tag)
	}
	return d
}

// ItemImageGet handles GET /items/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	payload, err := s.Inventory.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	imaging.Serve(w, r, payload)
}
