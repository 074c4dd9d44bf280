package domain

import "time"

// Article is one crawled web page. A nil Body marks a placeholder record:
// the fetch succeeded but the page was not a genuine article (or its text
// was too short). Placeholders are stored for dedup purposes but are never
// indexed, counted, or surfaced by search.
type Article struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	Hostname    string     `json:"hostname"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CrawledAt   time.Time  `json:"crawled_at"`
	Language    string     `json:"language,omitempty"`
	Translation *string    `json:"translation,omitempty"`
	Summary     *string    `json:"summary,omitempty"`
	TokenCount  int        `json:"token_count,omitempty"`
}

// Placeholder reports whether the article is a rejected, non-retrievable record.
func (a Article) Placeholder() bool {
	return a.Body == nil
}

// Page is the output of the page-to-article extractor.
type Page struct {
	IsArticle   bool
	Title       string
	Body        string
	Language    string
	PublishedAt *time.Time
	Links       []string
}

// SearchResult is one ranked retrieval hit. Score is the BM25 relevance
// multiplied by the recency factor; higher is better.
type SearchResult struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

// Posting records one article's term frequency in the inverted index.
type Posting struct {
	ArticleID string
	TF        int
}

// Stats holds corpus-level counters used for ranking.
type Stats struct {
	Articles    int     // all records, placeholders included
	Indexed     int     // records with a body, eligible for search
	TotalTokens int
	AvgDocLen   float64
}

// CrawlStatus classifies the outcome of ingesting a single URL.
type CrawlStatus int

const (
	CrawlStored CrawlStatus = iota
	CrawlRejected
	CrawlDuplicate
	CrawlFailed
)

func (s CrawlStatus) String() string {
	switch s {
	case CrawlStored:
		return "stored"
	case CrawlRejected:
		return "rejected"
	case CrawlDuplicate:
		return "duplicate"
	case CrawlFailed:
		return "failed"
	}
	return "unknown"
}

// CrawlOutcome is the per-URL result of a crawl. Err is set only for
// CrawlFailed; the caller decides whether to log and continue.
type CrawlOutcome struct {
	URL    string
	Status CrawlStatus
	Err    error
}
