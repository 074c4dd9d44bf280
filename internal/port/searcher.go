package port

import "ragnews/internal/domain"

// Searcher performs ranked keyword retrieval over the article store.
// alpha controls recency decay: smaller alpha means recency dominates more.
type Searcher interface {
	Search(query string, limit int, alpha float64) ([]domain.SearchResult, error)
}
