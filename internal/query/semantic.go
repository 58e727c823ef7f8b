package query

import "github.com/erazemk/najdeno/internal/model"

// Match is one entry of the semantic ranker's output: an item ID with a
// 0–100 confidence and a short explanation, already sorted
// confidence-descending by the ranker.
type Match struct {
	ID         string `json:"id"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// SearchResult is an item annotated with its semantic match. Confidence and
// reason are display-only; they are never written back to the catalog.
type SearchResult struct {
	model.Item
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// Semantic joins ranker matches back to full item records, in the order the
// ranker returned them. Matches whose ID is unknown locally are dropped.
func Semantic(items []model.Item, matches []Match) []SearchResult {
	byID := make(map[string]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	out := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		item, ok := byID[m.ID]
		if !ok {
			continue
		}
		out = append(out, SearchResult{Item: item, Confidence: m.Confidence, Reason: m.Reason})
	}
	return out
}
