package port

import "ragnews/internal/domain"

// ArticleStore is the single owner of Article storage. The crawler and the
// RAG orchestrator go through these operations only.
type ArticleStore interface {
	// PutArticle appends a record. Placeholders are stored but not indexed.
	// Duplicate policy lives in the caller, not here.
	PutArticle(article domain.Article) error

	// HasURL reports whether an article with this exact URL exists.
	HasURL(url string) (bool, error)

	GetArticle(id string) (domain.Article, error)

	// CountArticles counts records with a non-nil body.
	CountArticles() (int, error)

	GetPostings(term string) ([]domain.Posting, error)

	Stats() (domain.Stats, error)

	Close() error
}
