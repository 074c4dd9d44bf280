// Package memstore provides an in-memory article store used when no
// database path is configured and in tests.
package memstore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/domain"
)

// MemoryStore mirrors the bolt-backed store's semantics without persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	tokenizer *analyzer.Tokenizer
	articles  map[string]domain.Article
	urls      map[string]string
	postings  map[string][]domain.Posting
	stats     domain.Stats
}

func NewMemoryStore(tokenizer *analyzer.Tokenizer) *MemoryStore {
	return &MemoryStore{
		tokenizer: tokenizer,
		articles:  make(map[string]domain.Article),
		urls:      make(map[string]string),
		postings:  make(map[string][]domain.Posting),
	}
}

func (s *MemoryStore) PutArticle(article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	if !article.Placeholder() {
		tf := s.tokenizer.TermFrequencies(indexableText(article))
		article.TokenCount = 0
		for term, count := range tf {
			article.TokenCount += count
			s.postings[term] = append(s.postings[term], domain.Posting{ArticleID: article.ID, TF: count})
		}
		s.stats.Indexed++
		s.stats.TotalTokens += article.TokenCount
		s.stats.AvgDocLen = float64(s.stats.TotalTokens) / float64(s.stats.Indexed)
	}

	s.articles[article.ID] = article
	s.urls[article.URL] = article.ID
	s.stats.Articles++
	return nil
}

func (s *MemoryStore) HasURL(url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.urls[url]
	return ok, nil
}

func (s *MemoryStore) GetArticle(id string) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return domain.Article{}, fmt.Errorf("article not found: %s", id)
	}
	return article, nil
}

func (s *MemoryStore) CountArticles() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.Indexed, nil
}

func (s *MemoryStore) GetPostings(term string) ([]domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.postings[term], nil
}

func (s *MemoryStore) Stats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func indexableText(a domain.Article) string {
	text := ""
	if a.Title != nil {
		text += *a.Title + "\n"
	}
	if a.Body != nil {
		text += *a.Body + "\n"
	}
	if a.Translation != nil {
		text += *a.Translation + "\n"
	}
	if a.Summary != nil {
		text += *a.Summary
	}
	return text
}
