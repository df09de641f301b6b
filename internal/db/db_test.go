package db

import "testing"

func TestMemoryDatabaseSharedAcrossQueries(t *testing.T) {
	database := NewTestDB(t)

	if _, err := database.Exec(`INSERT INTO locations (id, name) VALUES ('1', 'Kitchen')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A second statement must see the same in-memory database.
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 location, got %d", count)
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)
	if err := EnsureSchema(database); err != nil {
		t.Errorf("second EnsureSchema: %v", err)
	}
}

func TestQuantityMustBePositive(t *testing.T) {
	database := NewTestDB(t)
	_, err := database.Exec(`INSERT INTO items (id, name, category, quantity) VALUES ('a', 'Cup', 'Kitchen', 0)`)
	if err == nil {
		t.Error("expected CHECK constraint to reject zero quantity")
	}
}
