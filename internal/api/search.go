package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/najdeno/internal/ai"
	"github.com/erazemk/najdeno/internal/query"
	"github.com/erazemk/najdeno/internal/store"
)

// SearchHandler handles the full search page: local filtering and the
// semantic mode that delegates ranking to the model.
type SearchHandler struct {
	Store *store.Store
	AI    *ai.Client
}

// Search handles GET /api/items/search. Query params: q, category, color,
// location, status, preset (all|today|week|month), start, end (YYYY-MM-DD).
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.Store.List()
	active := query.Active(items)

	results := query.Search(items, query.SearchCriteria{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Location: q.Get("location"),
		Status:   q.Get("status"),
		Preset:   query.TimePreset(q.Get("preset")),
		Start:    q.Get("start"),
		End:      q.Get("end"),
	}, time.Now())

	jsonResponse(w, http.StatusOK, map[string]any{
		"items":      results,
		"total":      len(results),
		"categories": query.Categories(active),
		"colors":     query.Colors(active),
		"locations":  query.Locations(active),
	})
}

type semanticRequest struct {
	Query string `json:"query"`
}

// Semantic handles POST /api/items/search/semantic. The local filters are
// bypassed entirely: the whole active set goes to the ranker and its order is
// presented as-is. Ranker failure degrades to an empty result, never an
// error status.
func (h *SearchHandler) Semantic(w http.ResponseWriter, r *http.Request) {
	var req semanticRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		jsonError(w, http.StatusBadRequest, "query required")
		return
	}

	active := query.Active(h.Store.List())

	candidates := make([]ai.Candidate, len(active))
	for i, item := range active {
		candidates[i] = ai.Candidate{
			ID:           item.ID,
			Category:     item.Category,
			Description:  item.Description,
			DetectedText: item.DetectedText,
			Location:     item.Location,
			Date:         item.Date,
		}
	}

	results := []query.SearchResult{}
	matches, err := h.AI.RankItems(r.Context(), req.Query, candidates)
	if err != nil {
		slog.Warn("semantic ranking failed, returning empty result", "error", err)
	} else {
		joined := make([]query.Match, len(matches))
		for i, m := range matches {
			joined[i] = query.Match{ID: m.ID, Confidence: m.Confidence, Reason: m.Reason}
		}
		results = query.Semantic(active, joined)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"items": results,
		"total": len(results),
	})
}
