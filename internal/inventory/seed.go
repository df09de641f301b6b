package inventory

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/shouna/internal/icons"
	"github.com/erazemk/shouna/internal/model"
	"github.com/erazemk/shouna/internal/store"
)

//go:embed seed.yaml
var defaultSeed []byte

// ErrNotEmpty is returned when a seed is loaded into a catalog that already
// holds data.
var ErrNotEmpty = errors.New("catalog is not empty")

// Seed is the initial catalog. Items are listed as they should appear,
// newest first. Icons maps extra icon keys to glyphs for the locations.
type Seed struct {
	Icons     map[string]string `yaml:"icons"`
	Locations []SeedLocation    `yaml:"locations"`
	Items     []SeedItem        `yaml:"items"`
}

// SeedLocation is one location in a seed file.
type SeedLocation struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Icon string `yaml:"icon"`
}

// SeedItem is one item in a seed file.
type SeedItem struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	LocationID   string   `yaml:"location_id"`
	Description  string   `yaml:"description"`
	Quantity     int      `yaml:"quantity"`
	Image        string   `yaml:"image"`
	Tags         []string `yaml:"tags"`
	PurchaseDate string   `yaml:"purchase_date"`
	ExpiryDate   string   `yaml:"expiry_date"`
}

// DefaultSeed returns the built-in sample household.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads a seed from a YAML file.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes and checks a YAML seed.
func ParseSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	ids := make(map[string]bool)
	for i, loc := range s.Locations {
		if loc.ID == "" || loc.Name == "" {
			return nil, fmt.Errorf("seed location %d: id and name are required", i)
		}
		if !model.ValidLocationType(loc.Type) {
			return nil, fmt.Errorf("seed location %q: unknown type %q", loc.ID, loc.Type)
		}
		if ids[loc.ID] {
			return nil, fmt.Errorf("seed location %q: duplicate id", loc.ID)
		}
		ids[loc.ID] = true
		if _, ok := s.Icons[loc.Icon]; !ok && !icons.Known(loc.Icon) {
			slog.Warn("seed location uses unknown icon", "location", loc.ID, "icon", loc.Icon)
		}
	}
	for i, item := range s.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("seed item %d: id is required", i)
		}
		if _, err := checkItem(normalize(item.newItem())); err != nil {
			return nil, fmt.Errorf("seed item %q: %w", item.ID, err)
		}
	}
	return &s, nil
}

func (s SeedItem) newItem() model.NewItem {
	return model.NewItem{
		Name:         s.Name,
		Category:     s.Category,
		LocationID:   s.LocationID,
		Description:  s.Description,
		Quantity:     s.Quantity,
		Image:        s.Image,
		Tags:         s.Tags,
		PurchaseDate: s.PurchaseDate,
		ExpiryDate:   s.ExpiryDate,
	}
}

// Load inserts a seed into the catalog. Items are inserted in reverse so
// the first listed item ends up at the head.
func (inv *Inventory) Load(ctx context.Context, s *Seed) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	nLocations, err := store.CountLocations(ctx, inv.db)
	if err != nil {
		return err
	}
	nItems, err := store.CountItems(ctx, inv.db)
	if err != nil {
		return err
	}
	if nLocations > 0 || nItems > 0 {
		return ErrNotEmpty
	}

	for key, glyph := range s.Icons {
		icons.Register(key, glyph)
	}

	for _, loc := range s.Locations {
		if _, err := store.CreateLocation(ctx, inv.db, model.Location{
			ID:   loc.ID,
			Name: loc.Name,
			Type: loc.Type,
			Icon: loc.Icon,
		}); err != nil {
			return fmt.Errorf("seeding location %q: %w", loc.ID, err)
		}
	}

	for i := len(s.Items) - 1; i >= 0; i-- {
		in := normalize(s.Items[i].newItem())
		image, err := checkItem(in)
		if err != nil {
			return fmt.Errorf("seeding item %q: %w", s.Items[i].ID, err)
		}
		if _, err := store.CreateItem(ctx, inv.db, model.Item{
			ID:           s.Items[i].ID,
			Name:         in.Name,
			Category:     in.Category,
			LocationID:   in.LocationID,
			Description:  in.Description,
			Quantity:     in.Quantity,
			Image:        image,
			Tags:         in.Tags,
			PurchaseDate: in.PurchaseDate,
			ExpiryDate:   in.ExpiryDate,
		}); err != nil {
			return fmt.Errorf("seeding item %q: %w", s.Items[i].ID, err)
		}
	}

	slog.Info("catalog seeded", "locations", len(s.Locations), "items", len(s.Items))
	return nil
}
