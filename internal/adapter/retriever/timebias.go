package retriever

import (
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/domain"
	"ragnews/internal/port"
)

// maxStaleAgeDays is the age assigned to articles without a parseable
// publish date, pushing them behind every dated candidate.
const maxStaleAgeDays = 36500

// TimeBiasedSearcher ranks articles by BM25 relevance multiplied by a
// recency factor alpha/(ageDays+alpha). Recent articles approach a factor
// of 1; old articles decay toward 0.
type TimeBiasedSearcher struct {
	store     port.ArticleStore
	tokenizer *analyzer.Tokenizer
	k1        float64
	b         float64
	log       *zap.Logger
	now       func() time.Time
}

func NewTimeBiasedSearcher(store port.ArticleStore, tokenizer *analyzer.Tokenizer, log *zap.Logger) *TimeBiasedSearcher {
	return &TimeBiasedSearcher{
		store:     store,
		tokenizer: tokenizer,
		k1:        1.2,
		b:         0.75,
		log:       log,
		now:       time.Now,
	}
}

// Search returns at most limit results ordered by final score descending.
// An empty result set is not an error.
func (s *TimeBiasedSearcher) Search(query string, limit int, alpha float64) ([]domain.SearchResult, error) {
	queryTokens := s.tokenizer.Tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	stats, err := s.store.Stats()
	if err != nil {
		return nil, err
	}
	if stats.Indexed == 0 {
		return nil, nil
	}

	scores := make(map[string]float64)
	articles := make(map[string]domain.Article)

	for _, term := range queryTokens {
		postings, err := s.store.GetPostings(term)
		if err != nil {
			continue
		}

		n := float64(len(postings))
		N := float64(stats.Indexed)
		idf := math.Log((N-n+0.5)/(n+0.5) + 1)

		for _, posting := range postings {
			if _, seen := articles[posting.ArticleID]; !seen {
				article, err := s.store.GetArticle(posting.ArticleID)
				if err != nil {
					continue
				}
				articles[posting.ArticleID] = article
			}

			dl := float64(articles[posting.ArticleID].TokenCount)
			avgDl := stats.AvgDocLen
			tf := float64(posting.TF)

			score := idf * (tf * (s.k1 + 1)) / (tf + s.k1*(1-s.b+s.b*dl/avgDl))
			scores[posting.ArticleID] += score
		}
	}

	results := make([]domain.SearchResult, 0, len(scores))
	for id, relevance := range scores {
		article := articles[id]
		if article.Placeholder() {
			continue
		}

		ageDays, err := s.ageDays(article)
		if err != nil {
			// Recover with the staleness fallback; one undated article
			// must not abort the query.
			s.log.Warn("article has no usable publish date, treating as maximally stale",
				zap.String("url", article.URL),
				zap.Error(err))
		}
		timeFactor := alpha / (float64(ageDays) + alpha)

		results = append(results, domain.SearchResult{
			URL:     article.URL,
			Title:   titleOf(article),
			Summary: summaryOf(article),
			Score:   relevance * timeFactor,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// ageDays returns the whole days between now and the publish timestamp.
// Articles without a timestamp get the maximal staleness and an
// ErrMissingPublishDate for the caller to log.
func (s *TimeBiasedSearcher) ageDays(article domain.Article) (int, error) {
	if article.PublishedAt == nil {
		return maxStaleAgeDays, domain.ErrMissingPublishDate
	}
	days := int(s.now().Sub(*article.PublishedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, nil
}

func titleOf(a domain.Article) string {
	if a.Title != nil {
		return *a.Title
	}
	return ""
}

func summaryOf(a domain.Article) string {
	if a.Summary != nil {
		return *a.Summary
	}
	return ""
}

// IsMissingPublishDate reports whether err is the staleness-fallback signal.
func IsMissingPublishDate(err error) bool {
	return errors.Is(err, domain.ErrMissingPublishDate)
}

// SetNow overrides the clock, for tests.
func (s *TimeBiasedSearcher) SetNow(now func() time.Time) {
	s.now = now
}
