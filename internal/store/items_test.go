package store

import (
	"context"
	"testing"

	"github.com/erazemk/shouna/internal/db"
	"github.com/erazemk/shouna/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, model.Item{
		ID:         "101",
		Name:       "冬季羽绒服",
		Category:   "服装",
		LocationID: "5",
		Quantity:   3,
		Image:      "data:image/jpeg;base64,AAAA",
		Tags:       []string{"冬季", "衣物", "外套"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "冬季羽绒服" {
		t.Errorf("expected name '冬季羽绒服', got %q", item.Name)
	}
	if len(item.Tags) != 3 || item.Tags[1] != "衣物" {
		t.Errorf("expected tags to round-trip in order, got %v", item.Tags)
	}
	if item.Image != "data:image/jpeg;base64,AAAA" {
		t.Errorf("expected image payload, got %q", item.Image)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, model.Item{ID: "a", Name: "First", Category: "x", Quantity: 1})
	CreateItem(ctx, database, model.Item{ID: "b", Name: "Second", Category: "x", Quantity: 1})
	CreateItem(ctx, database, model.Item{ID: "c", Name: "Third", Category: "x", Quantity: 1})

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "c" || items[2].ID != "a" {
		t.Errorf("expected newest first, got %s, %s, %s", items[0].ID, items[1].ID, items[2].ID)
	}
	if items[0].Image != "" {
		t.Error("expected list to skip image payloads")
	}
	if items[0].Tags == nil {
		t.Error("expected empty tags slice, got nil")
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, model.Item{ID: "a", Name: "Photo", Category: "x", Quantity: 1, Image: "https://example.com/a.jpg"})
	CreateItem(ctx, database, model.Item{ID: "b", Name: "No photo", Category: "x", Quantity: 1})

	image, err := GetItemImage(ctx, database, "a")
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if image != "https://example.com/a.jpg" {
		t.Errorf("expected placeholder URL, got %q", image)
	}

	image, _ = GetItemImage(ctx, database, "b")
	if image != "" {
		t.Errorf("expected no image, got %q", image)
	}
}

func TestOptionalDates(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, model.Item{
		ID: "a", Name: "Milk", Category: "食品", Quantity: 2,
		PurchaseDate: "2025-01-02", ExpiryDate: "2025-01-09",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.PurchaseDate != "2025-01-02" || item.ExpiryDate != "2025-01-09" {
		t.Errorf("dates did not round-trip: %q %q", item.PurchaseDate, item.ExpiryDate)
	}
}

func TestCountItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, model.Item{ID: "a", Name: "A", Category: "x", Quantity: 1})
	CreateItem(ctx, database, model.Item{ID: "b", Name: "B", Category: "x", Quantity: 4})

	n, err := CountItems(ctx, database)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 items, got %d", n)
	}
}
