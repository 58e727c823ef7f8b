package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// fixture mirrors the demo dataset shape: four items, one with a pending
// claim, one received (admin history only).
func fixture() []model.Item {
	return []model.Item{
		{
			ID: "demo-1", Category: "Water Bottle", Location: "Campus Gym",
			Description: "Blue metal Hydroflask found on the bleachers.",
			Date:        now, Status: model.StatusFound,
			Colors: []string{"Blue", "Silver"},
		},
		{
			ID: "demo-2", Category: "Electronics", Location: "Library - 2nd Floor",
			Description: "White AirPods Pro case.",
			Date:        now.Add(-24 * time.Hour), Status: model.StatusClaimRequested,
			Colors:        []string{"White"},
			ReporterEmail: "finder@college.edu",
			ClaimRequest:  &model.ClaimRequest{ClaimerName: "Alex Mercer", ContactNumber: "555-0199"},
		},
		{
			ID: "demo-3", Category: "ID Cards", Location: "Student Center",
			Description:  "Student ID card found near the Vending Machines.",
			Date:         now.Add(-10 * 24 * time.Hour), Status: model.StatusFound,
			DetectedText: "Rohan Das ID: 1905387",
		},
		{
			ID: "demo-4", Category: "Electronics", Location: "Science Block - Room 304",
			Description: "Black scientific calculator.",
			Date:        now.Add(-40 * 24 * time.Hour), Status: model.StatusReceived,
		},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestGalleryExcludesReceived(t *testing.T) {
	got := Gallery(fixture(), GalleryCriteria{})
	for _, item := range got {
		if item.Status == model.StatusReceived {
			t.Errorf("received item %s leaked into gallery", item.ID)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 gallery items, got %d", len(got))
	}
}

func TestGallerySortsNewestFirst(t *testing.T) {
	got := Gallery(fixture(), GalleryCriteria{})
	want := []string{"demo-1", "demo-2", "demo-3"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected order %v, got %v", want, ids(got))
	}
}

func TestGalleryFreeText(t *testing.T) {
	// Matches category...
	got := Gallery(fixture(), GalleryCriteria{Query: "bottle"})
	if len(got) != 1 || got[0].ID != "demo-1" {
		t.Errorf("expected only the water bottle, got %v", ids(got))
	}

	// ...and location, case-insensitively.
	got = Gallery(fixture(), GalleryCriteria{Query: "LIBRARY"})
	if len(got) != 1 || got[0].ID != "demo-2" {
		t.Errorf("expected only the library item, got %v", ids(got))
	}

	// Gallery free text does not search descriptions.
	got = Gallery(fixture(), GalleryCriteria{Query: "hydroflask"})
	if len(got) != 0 {
		t.Errorf("expected no description matches in gallery, got %v", ids(got))
	}
}

func TestGalleryDateAndCategory(t *testing.T) {
	got := Gallery(fixture(), GalleryCriteria{Date: now.Format(DayFormat)})
	if len(got) != 1 || got[0].ID != "demo-1" {
		t.Errorf("expected only today's item, got %v", ids(got))
	}

	got = Gallery(fixture(), GalleryCriteria{Category: "Electronics"})
	if len(got) != 1 || got[0].ID != "demo-2" {
		t.Errorf("expected active electronics only, got %v", ids(got))
	}
}

func TestRecent(t *testing.T) {
	items := Gallery(fixture(), GalleryCriteria{})
	if got := Recent(items, 2); len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
	if got := Recent(items, 8); len(got) != 3 {
		t.Errorf("expected all 3 items, got %d", len(got))
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	c := GalleryCriteria{Query: "e", Category: ""}
	first := Gallery(fixture(), c)
	second := Gallery(fixture(), c)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("same criteria gave different results: %v vs %v", ids(first), ids(second))
	}
}

func TestTriageTabs(t *testing.T) {
	// Scenario: exactly one pending claim in the seeded set.
	got := Triage(fixture(), TriageCriteria{Tab: "claim_requested"})
	if len(got) != 1 || got[0].ID != "demo-2" {
		t.Errorf("expected exactly the claimed item, got %v", ids(got))
	}

	// Admin sees received items: no implicit status exclusion.
	got = Triage(fixture(), TriageCriteria{Tab: TabAll})
	if len(got) != 4 {
		t.Errorf("expected all 4 items on the all tab, got %d", len(got))
	}
	got = Triage(fixture(), TriageCriteria{Tab: "received"})
	if len(got) != 1 || got[0].ID != "demo-4" {
		t.Errorf("expected the received item, got %v", ids(got))
	}
}

func TestTriagePreservesStoreOrder(t *testing.T) {
	got := Triage(fixture(), TriageCriteria{Tab: TabAll})
	want := []string{"demo-1", "demo-2", "demo-3", "demo-4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("triage must not resort: got %v", ids(got))
	}
}

func TestTriageFreeText(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"water", []string{"demo-1"}},       // category
		{"demo-3", []string{"demo-3"}},      // id substring
		{"finder@", []string{"demo-2"}},     // reporter email
		{"alex mercer", []string{"demo-2"}}, // claimer name
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		got := Triage(fixture(), TriageCriteria{Tab: TabAll, Query: tt.query})
		if !reflect.DeepEqual(ids(got), tt.want) {
			t.Errorf("Triage(query=%q) = %v, want %v", tt.query, ids(got), tt.want)
		}
	}
}

func TestTriageLocationAndDate(t *testing.T) {
	got := Triage(fixture(), TriageCriteria{Tab: TabAll, Location: "Campus Gym"})
	if len(got) != 1 || got[0].ID != "demo-1" {
		t.Errorf("expected gym item, got %v", ids(got))
	}

	// Location is an exact match, not a substring.
	got = Triage(fixture(), TriageCriteria{Tab: TabAll, Location: "Campus"})
	if len(got) != 0 {
		t.Errorf("expected exact location matching, got %v", ids(got))
	}

	day := now.Add(-24 * time.Hour).Format(DayFormat)
	got = Triage(fixture(), TriageCriteria{Tab: TabAll, Date: day})
	if len(got) != 1 || got[0].ID != "demo-2" {
		t.Errorf("expected yesterday's item, got %v", ids(got))
	}
}

func TestSearchFreeText(t *testing.T) {
	// Search reaches descriptions and detected text, unlike the gallery.
	got := Search(fixture(), SearchCriteria{Query: "hydroflask"}, now)
	if len(got) != 1 || got[0].ID != "demo-1" {
		t.Errorf("expected description match, got %v", ids(got))
	}

	got = Search(fixture(), SearchCriteria{Query: "rohan"}, now)
	if len(got) != 1 || got[0].ID != "demo-3" {
		t.Errorf("expected detected-text match, got %v", ids(got))
	}
}

func TestSearchAlwaysExcludesReceived(t *testing.T) {
	got := Search(fixture(), SearchCriteria{Status: TabAll}, now)
	for _, item := range got {
		if item.Status == model.StatusReceived {
			t.Errorf("received item %s leaked into search", item.ID)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	got := Search(fixture(), SearchCriteria{Color: "Silver"}, now)
	if len(got) != 1 || got[0].ID != "demo-1" {
		t.Errorf("expected color membership match, got %v", ids(got))
	}

	got = Search(fixture(), SearchCriteria{Status: "claim_requested"}, now)
	if len(got) != 1 || got[0].ID != "demo-2" {
		t.Errorf("expected status filter match, got %v", ids(got))
	}

	got = Search(fixture(), SearchCriteria{Location: "Student Center"}, now)
	if len(got) != 1 || got[0].ID != "demo-3" {
		t.Errorf("expected location match, got %v", ids(got))
	}
}

func TestSearchTimePresets(t *testing.T) {
	tests := []struct {
		preset TimePreset
		want   []string
	}{
		{PresetToday, []string{"demo-1"}},
		{PresetWeek, []string{"demo-1", "demo-2"}},
		{PresetMonth, []string{"demo-1", "demo-2", "demo-3"}},
		{PresetAll, []string{"demo-1", "demo-2", "demo-3"}},
	}

	for _, tt := range tests {
		got := Search(fixture(), SearchCriteria{Preset: tt.preset}, now)
		if !reflect.DeepEqual(ids(got), tt.want) {
			t.Errorf("Search(preset=%q) = %v, want %v", tt.preset, ids(got), tt.want)
		}
	}
}

func TestSearchDateRange(t *testing.T) {
	start := now.Add(-11 * 24 * time.Hour).Format(DayFormat)
	end := now.Add(-24 * time.Hour).Format(DayFormat)

	got := Search(fixture(), SearchCriteria{Start: start, End: end}, now)
	want := []string{"demo-2", "demo-3"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}

	// Boundaries are inclusive at day granularity: an end date equal to the
	// item's day still matches even though the item has a time of day.
	got = Search(fixture(), SearchCriteria{End: now.Format(DayFormat)}, now)
	if len(got) != 3 {
		t.Errorf("expected inclusive end boundary, got %v", ids(got))
	}

	// Range ANDs with the preset window.
	got = Search(fixture(), SearchCriteria{Preset: PresetWeek, Start: start}, now)
	want = []string{"demo-1", "demo-2"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected preset AND range, got %v", ids(got))
	}
}

func TestFacets(t *testing.T) {
	items := fixture()

	// Search facets cover the active set only, so demo-4's values are absent.
	active := Active(items)
	wantCats := []string{"Electronics", "ID Cards", "Water Bottle"}
	if got := Categories(active); !reflect.DeepEqual(got, wantCats) {
		t.Errorf("Categories = %v, want %v", got, wantCats)
	}

	wantColors := []string{"Blue", "Silver", "White"}
	if got := Colors(active); !reflect.DeepEqual(got, wantColors) {
		t.Errorf("Colors = %v, want %v", got, wantColors)
	}

	wantLocs := []string{"Campus Gym", "Library - 2nd Floor", "Student Center"}
	if got := Locations(active); !reflect.DeepEqual(got, wantLocs) {
		t.Errorf("Locations = %v, want %v", got, wantLocs)
	}

	// The admin view facets over everything, received included.
	if got := Locations(items); len(got) != 4 {
		t.Errorf("expected 4 admin locations, got %v", got)
	}
}

func TestCountByStatus(t *testing.T) {
	items := fixture()
	items = append(items, model.Item{ID: "v-1", Status: model.StatusVerified,
		ClaimRequest: &model.ClaimRequest{ClaimerName: "B"}})

	got := CountByStatus(items)
	want := StatusCounts{Pending: 1, Verified: 1, Total: 5}
	if got != want {
		t.Errorf("CountByStatus = %+v, want %+v", got, want)
	}
}

func TestSemanticJoin(t *testing.T) {
	matches := []Match{
		{ID: "demo-3", Confidence: 92, Reason: "name on card matches"},
		{ID: "ghost", Confidence: 80, Reason: "no such item"},
		{ID: "demo-1", Confidence: 40, Reason: "color match"},
	}

	got := Semantic(fixture(), matches)
	if len(got) != 2 {
		t.Fatalf("expected unknown ids dropped, got %d results", len(got))
	}
	// Ranker order is preserved, not re-sorted.
	if got[0].ID != "demo-3" || got[1].ID != "demo-1" {
		t.Errorf("expected ranker order, got %s then %s", got[0].ID, got[1].ID)
	}
	if got[0].Confidence != 92 || got[0].Reason != "name on card matches" {
		t.Errorf("annotations not carried over: %+v", got[0])
	}
}

func TestSemanticEmpty(t *testing.T) {
	if got := Semantic(fixture(), nil); len(got) != 0 {
		t.Errorf("expected empty result for no matches, got %d", len(got))
	}
}
