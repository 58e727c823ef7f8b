package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), db.NewTestDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func testItem(id string) model.Item {
	return model.Item{
		ID:          id,
		Category:    "Backpack",
		Description: "Red Nike backpack",
		Location:    "Cafeteria",
		Date:        time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		Colors:      []string{"Red"},
		Status:      model.StatusFound,
	}
}

func TestOpenSeedsDemoData(t *testing.T) {
	s := newTestStore(t)

	items := s.List()
	if len(items) != 4 {
		t.Fatalf("expected 4 demo items, got %d", len(items))
	}

	claimed := 0
	for _, item := range items {
		if item.Status == model.StatusClaimRequested {
			claimed++
			if item.ClaimRequest == nil {
				t.Errorf("item %s is claim_requested but has no claim", item.ID)
			}
		}
	}
	if claimed != 1 {
		t.Errorf("expected exactly 1 claim_requested demo item, got %d", claimed)
	}
}

func TestOpenMalformedSnapshot(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.ExecContext(ctx,
		`INSERT INTO snapshots (key, value) VALUES (?, ?)`, SnapshotKey, "{not json",
	); err != nil {
		t.Fatalf("inserting garbage snapshot: %v", err)
	}

	s, err := Open(ctx, database)
	if err != nil {
		t.Fatalf("Open should not fail on malformed snapshot: %v", err)
	}
	if len(s.List()) != 4 {
		t.Errorf("expected demo fallback, got %d items", len(s.List()))
	}
}

func TestOpenEmptySnapshot(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.ExecContext(ctx,
		`INSERT INTO snapshots (key, value) VALUES (?, ?)`, SnapshotKey, "[]",
	); err != nil {
		t.Fatalf("inserting empty snapshot: %v", err)
	}

	s, err := Open(ctx, database)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(s.List()) != 4 {
		t.Errorf("expected demo fallback for empty snapshot, got %d items", len(s.List()))
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := testItem("item-1")
	if err := s.Create(ctx, want); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get("item-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get returned %+v, want %+v", got, want)
	}

	// New items are prepended.
	if s.List()[0].ID != "item-1" {
		t.Errorf("expected new item at front, got %s", s.List()[0].ID)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, testItem("dup")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, testItem("dup")); err != ErrExists {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, testItem("gone"))
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("gone"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdateFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, testItem("edit-me"))

	loc := "Lecture Hall B"
	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got, err := s.UpdateFields(ctx, "edit-me", Update{Location: &loc, Date: &date})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	if got.Location != loc {
		t.Errorf("expected location %q, got %q", loc, got.Location)
	}
	if !got.Date.Equal(date) {
		t.Errorf("expected date %v, got %v", date, got.Date)
	}
	// Untouched fields survive.
	if got.Category != "Backpack" {
		t.Errorf("expected category unchanged, got %q", got.Category)
	}
	if got.Status != model.StatusFound {
		t.Errorf("UpdateFields must not change status, got %q", got.Status)
	}

	if _, err := s.UpdateFields(ctx, "missing", Update{Location: &loc}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFieldsKeepsClaim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, testItem("claimed"))
	s.SubmitClaim(ctx, "claimed", model.ClaimRequest{
		ClaimerName:   "Jane",
		ContactNumber: "555-1234",
		Description:   "scratch near hinge",
	})

	cat := "Bag"
	got, err := s.UpdateFields(ctx, "claimed", Update{Category: &cat})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got.Status != model.StatusClaimRequested || got.ClaimRequest == nil {
		t.Errorf("editing must not touch claim state: status=%q claim=%v", got.Status, got.ClaimRequest)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s1, err := Open(ctx, database)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.Create(ctx, testItem("survives")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A second store over the same database sees the persisted catalog.
	s2, err := Open(ctx, database)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	if _, err := s2.Get("survives"); err != nil {
		t.Errorf("expected persisted item after reopen, got %v", err)
	}
	if len(s2.List()) != 5 {
		t.Errorf("expected 5 items after reopen, got %d", len(s2.List()))
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore(t)

	items := s.List()
	items[0].Category = "Tampered"
	if s.List()[0].Category == "Tampered" {
		t.Error("mutating a listed item leaked into the store")
	}
}

func TestImageRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, testItem("photo"))
	if err := s.SetImage(ctx, "photo", []byte("jpeg bytes"), "image/jpeg"); err != nil {
		t.Fatalf("SetImage: %v", err)
	}

	data, mime, err := s.GetImage(ctx, "photo")
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if string(data) != "jpeg bytes" || mime != "image/jpeg" {
		t.Errorf("got %q/%q", data, mime)
	}

	if err := s.SetImage(ctx, "missing", nil, "image/png"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown item, got %v", err)
	}
	if _, _, err := s.GetImage(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing image, got %v", err)
	}
}
