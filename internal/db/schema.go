package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Item rows carry a monotonically increasing seq; listing by seq DESC
// yields head-insertion order. location_id is deliberately not a foreign
// key: dangling references are allowed and resolved to a fallback label.
const schema = `
CREATE TABLE IF NOT EXISTS locations (
    seq  INTEGER PRIMARY KEY AUTOINCREMENT,
    id   TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'room' CHECK (type IN ('room', 'storage')),
    icon TEXT NOT NULL DEFAULT 'home'
);

CREATE TABLE IF NOT EXISTS items (
    seq           INTEGER PRIMARY KEY AUTOINCREMENT,
    id            TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL,
    location_id   TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    image         TEXT,
    tags          TEXT NOT NULL DEFAULT '[]',
    purchase_date TEXT,
    expiry_date   TEXT
);

CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
