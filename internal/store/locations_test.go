package store

import (
	"context"
	"testing"

	"github.com/erazemk/shouna/internal/db"
	"github.com/erazemk/shouna/internal/model"
)

func TestCreateAndGetLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	loc, err := CreateLocation(ctx, database, model.Location{
		ID: "1", Name: "客厅", Type: model.LocationTypeRoom, Icon: "sofa",
	})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if loc.Name != "客厅" {
		t.Errorf("expected name '客厅', got %q", loc.Name)
	}
	if loc.Icon != "sofa" {
		t.Errorf("expected icon 'sofa', got %q", loc.Icon)
	}

	got, _ := GetLocation(ctx, database, "1")
	if got == nil || got.Type != model.LocationTypeRoom {
		t.Errorf("expected room location, got %+v", got)
	}

	missing, err := GetLocation(ctx, database, "2")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing location, got (%v, %v)", missing, err)
	}
}

func TestListLocationsCreationOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateLocation(ctx, database, model.Location{ID: "b", Name: "Bedroom", Type: model.LocationTypeRoom, Icon: "bed"})
	CreateLocation(ctx, database, model.Location{ID: "a", Name: "Attic", Type: model.LocationTypeStorage, Icon: "box"})

	locations, err := ListLocations(ctx, database)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations[0].ID != "b" || locations[1].ID != "a" {
		t.Errorf("expected creation order, got %s then %s", locations[0].ID, locations[1].ID)
	}

	n, _ := CountLocations(ctx, database)
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}

func TestCreateLocationRejectsUnknownType(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateLocation(context.Background(), database, model.Location{ID: "x", Name: "Garage", Type: "garage", Icon: "car"})
	if err == nil {
		t.Error("expected error for unknown location type")
	}
}

func TestDuplicateLocationIDRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateLocation(ctx, database, model.Location{ID: "1", Name: "A", Type: model.LocationTypeRoom, Icon: "home"})
	_, err := CreateLocation(ctx, database, model.Location{ID: "1", Name: "B", Type: model.LocationTypeRoom, Icon: "home"})
	if err == nil {
		t.Error("expected error for duplicate id")
	}
}
