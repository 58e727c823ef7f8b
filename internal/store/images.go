package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetImage stores the processed photo bytes for an item. Photos live outside
// the JSON snapshot so that listing the catalog stays cheap.
func (s *Store) SetImage(ctx context.Context, id string, data []byte, mime string) error {
	s.mu.RLock()
	exists := s.index(id) >= 0
	s.mu.RUnlock()
	if !exists {
		return ErrNotFound
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO images (item_id, data, mime) VALUES (?, ?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET data = excluded.data, mime = excluded.mime`,
		id, data, mime,
	)
	if err != nil {
		return fmt.Errorf("storing item image: %w", err)
	}
	return nil
}

// GetImage returns an item's photo bytes and MIME type, or ErrNotFound when
// no photo is stored.
func (s *Store) GetImage(ctx context.Context, id string) ([]byte, string, error) {
	var data []byte
	var mime string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, mime FROM images WHERE item_id = ?`, id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return data, mime, nil
}
