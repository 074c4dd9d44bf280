package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/domain"
)

var (
	bucketArticles = []byte("articles")
	bucketURLs     = []byte("urls")
	bucketTerms    = []byte("terms")
	bucketStats    = []byte("stats")
	keyStats       = []byte("corpus_stats")
)

// BoltStore is a bbolt-backed article store. Articles are stored as JSON
// records; an inverted index over title, body, translation and summary
// tokens backs ranked retrieval. Placeholder articles (nil body) are stored
// and dedup-indexed but never enter the term index or the counters.
type BoltStore struct {
	db        *bbolt.DB
	tokenizer *analyzer.Tokenizer
}

// NewBoltStore opens (or creates) the store at path.
func NewBoltStore(path string, tokenizer *analyzer.Tokenizer) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketArticles, bucketURLs, bucketTerms, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db, tokenizer: tokenizer}
	if err := s.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// PutArticle appends a record. The store performs no duplicate checking;
// that policy belongs to the caller.
func (s *BoltStore) PutArticle(article domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	var tf map[string]int
	if !article.Placeholder() {
		tf = s.tokenizer.TermFrequencies(indexableText(article))
		article.TokenCount = 0
		for _, n := range tf {
			article.TokenCount += n
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketArticles).Put([]byte(article.ID), data); err != nil {
			return err
		}
		if err := tx.Bucket(bucketURLs).Put([]byte(article.URL), []byte(article.ID)); err != nil {
			return err
		}

		stats, err := readStats(tx)
		if err != nil {
			return err
		}
		stats.Articles++

		if !article.Placeholder() {
			terms := tx.Bucket(bucketTerms)
			for term, count := range tf {
				var postings []domain.Posting
				if existing := terms.Get([]byte(term)); existing != nil {
					if err := json.Unmarshal(existing, &postings); err != nil {
						return err
					}
				}
				postings = append(postings, domain.Posting{ArticleID: article.ID, TF: count})
				data, err := json.Marshal(postings)
				if err != nil {
					return err
				}
				if err := terms.Put([]byte(term), data); err != nil {
					return err
				}
			}

			stats.Indexed++
			stats.TotalTokens += article.TokenCount
			stats.AvgDocLen = float64(stats.TotalTokens) / float64(stats.Indexed)
		}

		return writeStats(tx, stats)
	})
}

// HasURL reports whether an article with this exact URL exists.
func (s *BoltStore) HasURL(url string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketURLs).Get([]byte(url)) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) GetArticle(id string) (domain.Article, error) {
	var article domain.Article
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketArticles).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("article not found: %s", id)
		}
		return json.Unmarshal(data, &article)
	})
	return article, err
}

// CountArticles counts records with a non-nil body. Placeholders are
// excluded.
func (s *BoltStore) CountArticles() (int, error) {
	stats, err := s.Stats()
	if err != nil {
		return 0, err
	}
	return stats.Indexed, nil
}

func (s *BoltStore) GetPostings(term string) ([]domain.Posting, error) {
	var postings []domain.Posting
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTerms).Get([]byte(term))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &postings)
	})
	return postings, err
}

func (s *BoltStore) Stats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		stats, err = readStats(tx)
		return err
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func readStats(tx *bbolt.Tx) (domain.Stats, error) {
	var stats domain.Stats
	data := tx.Bucket(bucketStats).Get(keyStats)
	if data == nil {
		return stats, nil
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

func writeStats(tx *bbolt.Tx, stats domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketStats).Put(keyStats, data)
}

// indexableText concatenates every searchable field of an article.
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
