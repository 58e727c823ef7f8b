package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. The item catalog itself lives in the
// snapshots table as a single versioned JSON document, written wholesale on
// every mutation; photos are kept out of the document so listing stays cheap.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    item_id TEXT PRIMARY KEY,
    data    BLOB NOT NULL,
    mime    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
