package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shouna/internal/model"
)

// CreateLocation appends a location.
func CreateLocation(ctx context.Context, db *sql.DB, loc model.Location) (*model.Location, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO locations (id, name, type, icon) VALUES (?, ?, ?, ?)`,
		loc.ID, loc.Name, loc.Type, loc.Icon,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	return GetLocation(ctx, db, loc.ID)
}

// GetLocation returns a location by ID.
func GetLocation(ctx context.Context, db *sql.DB, id string) (*model.Location, error) {
	loc := &model.Location{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, type, icon FROM locations WHERE id = ?`, id,
	).Scan(&loc.ID, &loc.Name, &loc.Type, &loc.Icon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return loc, nil
}

// ListLocations returns all locations in creation order.
func ListLocations(ctx context.Context, db *sql.DB) ([]model.Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, type, icon FROM locations ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Type, &loc.Icon); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// CountLocations returns the number of locations.
func CountLocations(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting locations: %w", err)
	}
	return count, nil
}
