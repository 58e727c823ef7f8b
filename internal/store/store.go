package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// SnapshotKey is the versioned key under which the whole catalog is persisted.
const SnapshotKey = "items_v3"

var (
	// ErrNotFound is returned when no item exists for the given ID.
	ErrNotFound = errors.New("item not found")
	// ErrExists is returned when creating an item whose ID is already taken.
	ErrExists = errors.New("item already exists")
	// ErrInvalidTransition is returned for status changes outside the
	// found → claim_requested → verified → received lifecycle (plus claim
	// rejection, claim_requested → found).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store owns the in-memory item catalog and its persisted snapshot. All
// mutations go through its methods; reads return copies, so the
// claimRequest/status invariant cannot be broken from outside.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	items []model.Item
}

// Open loads the persisted catalog from the database. A missing, empty, or
// malformed snapshot falls back to the built-in demo dataset; loading never
// fails hard on bad data.
func Open(ctx context.Context, database *sql.DB) (*Store, error) {
	s := &Store{db: database}

	var raw string
	err := database.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = ?`, SnapshotKey,
	).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		s.items = DemoItems()
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || len(items) == 0 {
		if err != nil {
			slog.Warn("persisted snapshot is malformed, seeding demo data", "error", err)
		}
		s.items = DemoItems()
		return s, nil
	}

	s.items = items
	return s, nil
}

// List returns a copy of the full catalog in insertion order, newest first.
func (s *Store) List() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}
	return items
}

// Get returns a copy of the item with the given ID.
func (s *Store) Get(id string) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}
	return s.items[i].Clone(), nil
}

// Create inserts a new item at the front of the catalog.
func (s *Store) Create(ctx context.Context, item model.Item) error {
	if item.ID == "" {
		return fmt.Errorf("creating item: empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(item.ID) >= 0 {
		return ErrExists
	}

	s.items = append([]model.Item{item.Clone()}, s.items...)
	s.persist(ctx)
	return nil
}

// Delete permanently removes an item and its stored photo.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist(ctx)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE item_id = ?`, id); err != nil {
		slog.Warn("failed to delete item image", "id", id, "error", err)
	}
	return nil
}

// Update holds optional field corrections for UpdateFields. Nil fields are
// left untouched.
type Update struct {
	Category    *string
	Description *string
	Location    *string
	Date        *time.Time
}

// UpdateFields merges the provided fields into an existing item. It never
// changes status or the attached claim; those only move through the claim
// workflow methods.
func (s *Store) UpdateFields(ctx context.Context, id string, u Update) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}

	item := &s.items[i]
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Location != nil {
		item.Location = *u.Location
	}
	if u.Date != nil {
		item.Date = *u.Date
	}

	s.persist(ctx)
	return item.Clone(), nil
}

// index returns the position of the item with the given ID, or -1.
// Callers must hold the lock.
func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist re-serializes the whole catalog into the snapshot row. A write
// failure is logged but does not fail the mutation; the in-memory state is
// authoritative for the session. Callers must hold the lock.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		slog.Warn("failed to encode item snapshot", "error", err)
		return
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		SnapshotKey, string(raw),
	)
	if err != nil {
		slog.Warn("failed to persist item snapshot", "error", err)
	}
}
