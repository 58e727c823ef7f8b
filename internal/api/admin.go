package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/query"
	"github.com/erazemk/najdeno/internal/store"
)

// AdminHandler handles the triage listing and dashboard stats.
type AdminHandler struct {
	Store *store.Store
}

// Triage handles GET /api/admin/items. Query params: tab (all or a status),
// q, date (YYYY-MM-DD), location. Received items are visible here.
func (h *AdminHandler) Triage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.Store.List()

	tab := q.Get("tab")
	if tab == "" {
		tab = query.TabAll
	}

	results := query.Triage(items, query.TriageCriteria{
		Tab:      tab,
		Query:    q.Get("q"),
		Date:     q.Get("date"),
		Location: q.Get("location"),
	})

	jsonResponse(w, http.StatusOK, map[string]any{
		"items":     results,
		"total":     len(results),
		"locations": query.Locations(items),
	})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, query.CountByStatus(h.Store.List()))
}
