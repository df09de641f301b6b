package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/shouna/internal/model"
)

const itemColumns = `id, name, category, location_id, description, quantity, tags, purchase_date, expiry_date`

// CreateItem inserts an item. Items are listed newest first, so the new
// item becomes the head of the collection.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO items (id, name, category, location_id, description, quantity, image, tags, purchase_date, expiry_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Category, item.LocationID, item.Description, item.Quantity,
		nullString(item.Image), string(tagsJSON), nullString(item.PurchaseDate), nullString(item.ExpiryDate),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID, including its image payload.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	var image sql.NullString
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+`, image FROM items WHERE id = ?`, id,
	), &image)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Image = image.String
	return item, nil
}

// ListItems returns all items, newest first. Image payloads are not loaded;
// use GetItemImage for those.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetItemImage returns an item's image payload (data URL or placeholder URL).
// An empty string means the item has no image or does not exist.
func GetItemImage(ctx context.Context, db *sql.DB, id string) (string, error) {
	var image sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image FROM items WHERE id = ?`, id,
	).Scan(&image)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting item image: %w", err)
	}
	return image.String, nil
}

// CountItems returns the number of items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner, extra ...any) (*model.Item, error) {
	var item model.Item
	var tagsJSON string
	var purchase, expiry sql.NullString

	dest := []any{&item.ID, &item.Name, &item.Category, &item.LocationID, &item.Description,
		&item.Quantity, &tagsJSON, &purchase, &expiry}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	item.PurchaseDate = purchase.String
	item.ExpiryDate = expiry.String
	return &item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
