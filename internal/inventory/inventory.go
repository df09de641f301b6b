// Package inventory holds the household catalog state and the pure
// functions that derive the inventory grid and the dashboard from it.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shouna/internal/imaging"
	"github.com/erazemk/shouna/internal/metrics"
	"github.com/erazemk/shouna/internal/model"
	"github.com/erazemk/shouna/internal/store"
)

// Inventory is the single owner of the catalog state. Every mutation goes
// through one of its command methods; reads return snapshots.
type Inventory struct {
	db *sql.DB

	// Placeholder returns the image used for items added without a photo.
	Placeholder func() string

	mu                 sync.Mutex
	selectedLocationID string
	query              string
}

// New returns an Inventory backed by db, which must already carry the schema.
func New(db *sql.DB) *Inventory {
	return &Inventory{
		db:          db,
		Placeholder: placeholderImage,
	}
}

func placeholderImage() string {
	return fmt.Sprintf("https://picsum.photos/400/400?random=%d", time.Now().UnixMilli())
}

// View is the inventory grid as currently selected and searched.
type View struct {
	SelectedLocationID   string       `json:"selected_location_id"`
	SelectedLocationName string       `json:"selected_location_name,omitempty"`
	Query                string       `json:"query"`
	Items                []model.Item `json:"items"`
}

// AddLocation appends a location with the default type and icon. A blank
// name is treated as a cancelled prompt: nothing is added and nil is
// returned.
func (inv *Inventory) AddLocation(ctx context.Context, name string) (*model.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	loc, err := store.CreateLocation(ctx, inv.db, model.Location{
		ID:   id,
		Name: name,
		Type: model.DefaultLocationType,
		Icon: model.DefaultLocationIcon,
	})
	if err != nil {
		return nil, err
	}
	metrics.LocationsAdded.Inc()
	slog.Info("location added", "location", loc.Name, "id", loc.ID)
	return loc, nil
}

// AddItem validates in and inserts it at the head of the collection.
func (inv *Inventory) AddItem(ctx context.Context, in model.NewItem) (*model.Item, error) {
	in = normalize(in)
	image, err := checkItem(in)
	if err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	if image == "" && inv.Placeholder != nil {
		image = inv.Placeholder()
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, err := store.CreateItem(ctx, inv.db, model.Item{
		ID:           id,
		Name:         in.Name,
		Category:     in.Category,
		LocationID:   in.LocationID,
		Description:  in.Description,
		Quantity:     in.Quantity,
		Image:        image,
		Tags:         in.Tags,
		PurchaseDate: in.PurchaseDate,
		ExpiryDate:   in.ExpiryDate,
	})
	if err != nil {
		return nil, err
	}
	metrics.ItemsAdded.Inc()
	slog.Info("item added", "item", item.Name, "category", item.Category, "quantity", item.Quantity)
	return item, nil
}

// SelectLocation restricts the inventory view to one location. An empty id
// clears the selection.
func (inv *Inventory) SelectLocation(id string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.selectedLocationID = id
}

// SetSearch sets the search text applied to the inventory view.
func (inv *Inventory) SetSearch(query string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.query = query
}

// Selection returns the current location selection and search text.
func (inv *Inventory) Selection() (locationID, query string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.selectedLocationID, inv.query
}

// View returns the inventory grid for the current selection and search.
func (inv *Inventory) View(ctx context.Context) (*View, error) {
	locationID, query := inv.Selection()

	items, err := inv.Items(ctx)
	if err != nil {
		return nil, err
	}

	v := &View{
		SelectedLocationID: locationID,
		Query:              query,
		Items:              Filter(items, locationID, query),
	}
	if locationID != "" {
		v.SelectedLocationName, err = inv.LocationName(ctx, locationID)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Items returns all items, newest first.
func (inv *Inventory) Items(ctx context.Context) ([]model.Item, error) {
	items, err := store.ListItems(ctx, inv.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Item returns one item with its image payload, or nil.
func (inv *Inventory) Item(ctx context.Context, id string) (*model.Item, error) {
	return store.GetItem(ctx, inv.db, id)
}

// ItemImage returns an item's image payload.
func (inv *Inventory) ItemImage(ctx context.Context, id string) (string, error) {
	return store.GetItemImage(ctx, inv.db, id)
}

// Locations returns all locations in creation order.
func (inv *Inventory) Locations(ctx context.Context) ([]model.Location, error) {
	locations, err := store.ListLocations(ctx, inv.db)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []model.Location{}
	}
	return locations, nil
}

// LocationName resolves a location ID to its display name, falling back to
// model.UnknownLocationName for dangling references.
func (inv *Inventory) LocationName(ctx context.Context, id string) (string, error) {
	loc, err := store.GetLocation(ctx, inv.db, id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return model.UnknownLocationName, nil
	}
	return loc.Name, nil
}

// Dashboard summarizes the whole catalog.
func (inv *Inventory) Dashboard(ctx context.Context) (*Summary, error) {
	items, err := inv.Items(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := inv.Locations(ctx)
	if err != nil {
		return nil, err
	}
	s := Summarize(items, locations)
	return &s, nil
}

// LocationNames returns a lookup from location ID to name for rendering.
func LocationNames(locations []model.Location) func(id string) string {
	names := make(map[string]string, len(locations))
	for _, loc := range locations {
		names[loc.ID] = loc.Name
	}
	return func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return model.UnknownLocationName
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id.String(), nil
}

// checkItem validates in and returns its image re-encoded for storage.
// Inline images are decoded and re-encoded so only real JPEG, PNG or WebP
// data is ever stored and served back.
func checkItem(in model.NewItem) (string, error) {
	fields := map[string]string{}
	if err := Validate(in); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return "", err
		}
		fields = verr.Fields
	}

	image, err := imaging.Normalize(in.Image)
	if err != nil {
		fields["image"] = "图片格式不支持（仅限 JPEG、PNG、WebP 或图片链接）"
	}

	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}
	return image, nil
}

func normalize(in model.NewItem) model.NewItem {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.Tags = NormalizeTags(in.Tags)
	return in
}

// NormalizeTags trims tags, drops blanks and removes duplicates, keeping
// the first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
