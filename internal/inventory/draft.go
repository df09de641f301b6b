package inventory

import (
	"context"
	"strings"

	"github.com/erazemk/shouna/internal/model"
)

// Analyzer extracts a structured record from an item photo.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, data []byte, mime string) (*model.Analysis, error)
}

// Draft is the add-item form being filled in, by hand or from a photo.
type Draft struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	LocationID  string   `json:"location_id"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags"`
}

// NewDraft returns an empty draft defaulting to the first location and a
// quantity of one.
func NewDraft(locations []model.Location) *Draft {
	d := &Draft{Quantity: 1, Tags: []string{}}
	if len(locations) > 0 {
		d.LocationID = locations[0].ID
	}
	return d
}

// AddTag appends a trimmed tag unless it is blank or already present.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range d.Tags {
		if t == tag {
			return false
		}
	}
	d.Tags = append(d.Tags, tag)
	return true
}

// RemoveTag removes tag if present.
func (d *Draft) RemoveTag(tag string) {
	for i, t := range d.Tags {
		if t == tag {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return
		}
	}
}

// Apply overwrites the descriptive fields with an analysis result and
// moves the draft to the first location whose name contains the suggested
// storage type. Location and quantity are otherwise left alone.
func (d *Draft) Apply(a *model.Analysis, locations []model.Location) {
	d.Name = a.Name
	d.Category = a.Category
	d.Description = a.Description
	d.Tags = NormalizeTags(a.Tags)
	if loc, ok := MatchLocation(locations, a.SuggestedStorageType); ok {
		d.LocationID = loc.ID
	}
}

// Analyze runs the analyzer on a photo and applies the result. On failure
// the draft is left exactly as it was and the error is returned.
func (d *Draft) Analyze(ctx context.Context, an Analyzer, data []byte, mime string, locations []model.Location) error {
	a, err := an.AnalyzeImage(ctx, data, mime)
	if err != nil {
		return err
	}
	d.Apply(a, locations)
	return nil
}

// Item converts the draft into the input of Inventory.AddItem.
func (d *Draft) Item() model.NewItem {
	return model.NewItem{
		Name:        d.Name,
		Category:    d.Category,
		LocationID:  d.LocationID,
		Description: d.Description,
		Quantity:    d.Quantity,
		Image:       d.Image,
		Tags:        append([]string(nil), d.Tags...),
	}
}

// MatchLocation returns the first location whose lower-cased name contains
// the lower-cased suggestion. An empty suggestion matches nothing.
func MatchLocation(locations []model.Location, suggestion string) (model.Location, bool) {
	s := strings.ToLower(strings.TrimSpace(suggestion))
	if s == "" {
		return model.Location{}, false
	}
	for _, loc := range locations {
		if strings.Contains(strings.ToLower(loc.Name), s) {
			return loc, true
		}
	}
	return model.Location{}, false
}
