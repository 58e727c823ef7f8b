// Package query filters and orders item catalogs for the public gallery, the
// full search page, and the admin triage view. Everything here is a pure
// function over a snapshot of the catalog; nothing is cached or mutated.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// DayFormat is the day-granularity date format used by the date filters.
const DayFormat = "2006-01-02"

// Active returns the items visible to the public: everything not yet handed
// back to its owner.
func Active(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if item.Status != model.StatusReceived {
			out = append(out, item)
		}
	}
	return out
}

// GalleryCriteria filters the public gallery. Zero values mean "no filter".
type GalleryCriteria struct {
	Query    string // substring of category or location, case-insensitive
	Category string // exact match
	Date     string // single calendar day, DayFormat
}

// Gallery returns the public gallery view: received items excluded, all
// criteria ANDed, newest found-date first.
func Gallery(items []model.Item, c GalleryCriteria) []model.Item {
	q := strings.ToLower(c.Query)

	out := make([]model.Item, 0, len(items))
	for _, item := range Active(items) {
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Category), q) &&
			!strings.Contains(strings.ToLower(item.Location), q) {
			continue
		}
		if c.Category != "" && item.Category != c.Category {
			continue
		}
		if c.Date != "" && item.Date.Format(DayFormat) != c.Date {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent truncates a result set to the first n items.
func Recent(items []model.Item, n int) []model.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// TabAll shows every status in the triage view.
const TabAll = "all"

// TriageCriteria filters the admin triage view.
type TriageCriteria struct {
	Tab      string // TabAll or an exact status
	Query    string // substring of category, id, reporter email, or claimer name
	Date     string // single calendar day, DayFormat
	Location string // exact match
}

// Triage returns the admin view of the catalog. Unlike the public views it
// never excludes a status implicitly (received items are admin history), and
// the store's order is preserved.
func Triage(items []model.Item, c TriageCriteria) []model.Item {
	q := strings.ToLower(c.Query)

	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if c.Tab != "" && c.Tab != TabAll && string(item.Status) != c.Tab {
			continue
		}
		if q != "" && !triageTextMatch(item, q) {
			continue
		}
		if c.Date != "" && item.Date.Format(DayFormat) != c.Date {
			continue
		}
		if c.Location != "" && item.Location != c.Location {
			continue
		}
		out = append(out, item)
	}
	return out
}

func triageTextMatch(item model.Item, q string) bool {
	if strings.Contains(strings.ToLower(item.Category), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.ID), q) {
		return true
	}
	if item.ReporterEmail != "" && strings.Contains(strings.ToLower(item.ReporterEmail), q) {
		return true
	}
	if item.ClaimRequest != nil && strings.Contains(strings.ToLower(item.ClaimRequest.ClaimerName), q) {
		return true
	}
	return false
}

// TimePreset is a relative found-date window on the search page.
type TimePreset string

const (
	PresetAll   TimePreset = "all"
	PresetToday TimePreset = "today"
	PresetWeek  TimePreset = "week"  // trailing 7 days
	PresetMonth TimePreset = "month" // trailing 30 days
)

// SearchCriteria filters the full search page. All active criteria are ANDed.
type SearchCriteria struct {
	Query    string     // substring of category, description, location, or detected text
	Category string     // exact match
	Color    string     // membership in the item's color set
	Location string     // exact match
	Status   string     // "", "all", "found", or "claim_requested"
	Preset   TimePreset // relative window on the found date
	Start    string     // inclusive range start, DayFormat
	End      string     // inclusive range end, DayFormat
}

// Search returns the search-page view. Received items are always excluded;
// an explicit date range is ANDed with the preset window.
func Search(items []model.Item, c SearchCriteria, now time.Time) []model.Item {
	q := strings.ToLower(c.Query)

	out := make([]model.Item, 0, len(items))
	for _, item := range Active(items) {
		if q != "" && !searchTextMatch(item, q) {
			continue
		}
		if c.Category != "" && item.Category != c.Category {
			continue
		}
		if c.Color != "" && !hasColor(item, c.Color) {
			continue
		}
		if c.Location != "" && item.Location != c.Location {
			continue
		}
		if c.Status != "" && c.Status != TabAll && string(item.Status) != c.Status {
			continue
		}
		if !matchesWindow(item.Date, c, now) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func searchTextMatch(item model.Item, q string) bool {
	return strings.Contains(strings.ToLower(item.Category), q) ||
		strings.Contains(strings.ToLower(item.Description), q) ||
		strings.Contains(strings.ToLower(item.Location), q) ||
		(item.DetectedText != "" && strings.Contains(strings.ToLower(item.DetectedText), q))
}

func hasColor(item model.Item, color string) bool {
	for _, c := range item.Colors {
		if c == color {
			return true
		}
	}
	return false
}

func matchesWindow(date time.Time, c SearchCriteria, now time.Time) bool {
	switch c.Preset {
	case PresetToday:
		if date.Format(DayFormat) != now.Format(DayFormat) {
			return false
		}
	case PresetWeek:
		if date.Before(now.Add(-7 * 24 * time.Hour)) {
			return false
		}
	case PresetMonth:
		if date.Before(now.Add(-30 * 24 * time.Hour)) {
			return false
		}
	}

	if c.Start != "" {
		start, err := time.ParseInLocation(DayFormat, c.Start, date.Location())
		if err == nil && date.Before(start) {
			return false
		}
	}
	if c.End != "" {
		end, err := time.ParseInLocation(DayFormat, c.End, date.Location())
		if err == nil && date.After(end.Add(24*time.Hour-time.Nanosecond)) {
			return false
		}
	}
	return true
}

// Categories returns the sorted distinct categories of the given items.
// Callers decide the scope: the search page facets over Active(items), the
// admin view over everything.
func Categories(items []model.Item) []string {
	return distinct(items, func(i model.Item) []string { return []string{i.Category} })
}

// Colors returns the sorted distinct color labels of the given items.
func Colors(items []model.Item) []string {
	return distinct(items, func(i model.Item) []string { return i.Colors })
}

// Locations returns the sorted distinct locations of the given items.
func Locations(items []model.Item) []string {
	return distinct(items, func(i model.Item) []string { return []string{i.Location} })
}

func distinct(items []model.Item, values func(model.Item) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		for _, v := range values(item) {
			if v != "" && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// StatusCounts is the admin dashboard stat strip.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Total    int `json:"total"`
}

// CountByStatus tallies pending claims, verified claims, and the catalog size.
func CountByStatus(items []model.Item) StatusCounts {
	c := StatusCounts{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case model.StatusClaimRequested:
			c.Pending++
		case model.StatusVerified:
			c.Verified++
		}
	}
	return c
}
