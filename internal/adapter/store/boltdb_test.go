package store

import (
	"path/filepath"
	"testing"
	"time"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()

	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"), analyzer.NewTokenizer())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func strPtr(s string) *string { return &s }

func testArticle(url, title, body string) domain.Article {
	now := time.Now()
	return domain.Article{
		Title:       strPtr(title),
		Body:        strPtr(body),
		Hostname:    "example.com",
		URL:         url,
		PublishedAt: &now,
		CrawledAt:   now,
		Language:    "en",
	}
}

func TestPutArticle_IndexesTerms(t *testing.T) {
	st := newTestStore(t)

	article := testArticle("https://example.com/a", "Election results", "The election results are in tonight")
	if err := st.PutArticle(article); err != nil {
		t.Fatal(err)
	}

	postings, err := st.GetPostings("election")
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting for %q, got %d", "election", len(postings))
	}
	// Term appears in both title and body.
	if postings[0].TF != 2 {
		t.Errorf("expected TF=2, got %d", postings[0].TF)
	}

	count, err := st.CountArticles()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected count=1, got %d", count)
	}
}

func TestPutArticle_PlaceholderExcluded(t *testing.T) {
	st := newTestStore(t)

	now := time.Now()
	placeholder := domain.Article{
		Hostname:  "example.com",
		URL:       "https://example.com/not-an-article",
		CrawledAt: now,
	}
	if err := st.PutArticle(placeholder); err != nil {
		t.Fatal(err)
	}

	count, err := st.CountArticles()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("placeholder must not be counted, got count=%d", count)
	}

	// Still visible to the dedup check.
	found, err := st.HasURL("https://example.com/not-an-article")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("placeholder URL should be recorded for dedup")
	}

	stats, err := st.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Articles != 1 {
		t.Errorf("expected Articles=1, got %d", stats.Articles)
	}
	if stats.Indexed != 0 {
		t.Errorf("expected Indexed=0, got %d", stats.Indexed)
	}
}

func TestHasURL(t *testing.T) {
	st := newTestStore(t)

	if err := st.PutArticle(testArticle("https://example.com/a", "Title", "Some body text here")); err != nil {
		t.Fatal(err)
	}

	found, err := st.HasURL("https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("expected HasURL=true for stored URL")
	}

	found, err = st.HasURL("https://example.com/other")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected HasURL=false for unknown URL")
	}
}

func TestPutArticle_SearchableFields(t *testing.T) {
	st := newTestStore(t)

	article := testArticle("https://example.com/es", "Economía", "Texto del artículo en español sobre la economía")
	article.Language = "es"
	article.Translation = strPtr("Article text in Spanish about the economy")
	article.Summary = strPtr("A summary about the Spanish economy")
	if err := st.PutArticle(article); err != nil {
		t.Fatal(err)
	}

	// Terms from the translation and summary are searchable too.
	for _, term := range []string{"economy", "summary", "economía"} {
		postings, err := st.GetPostings(term)
		if err != nil {
			t.Fatal(err)
		}
		if len(postings) != 1 {
			t.Errorf("expected posting for %q, got %d", term, len(postings))
		}
	}
}

func TestStats_AvgDocLen(t *testing.T) {
	st := newTestStore(t)

	if err := st.PutArticle(testArticle("https://example.com/1", "one", "alpha beta gamma")); err != nil {
		t.Fatal(err)
	}
	if err := st.PutArticle(testArticle("https://example.com/2", "two", "alpha")); err != nil {
		t.Fatal(err)
	}

	stats, err := st.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Indexed != 2 {
		t.Fatalf("expected Indexed=2, got %d", stats.Indexed)
	}
	if stats.AvgDocLen <= 0 {
		t.Errorf("expected positive AvgDocLen, got %f", stats.AvgDocLen)
	}
}

func TestSchemaVersion_Persisted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.db")

	st, err := NewBoltStore(path, analyzer.NewTokenizer())
	if err != nil {
		t.Fatal(err)
	}
	st.Close()

	// Reopening a database stamped with the current version succeeds.
	st, err = NewBoltStore(path, analyzer.NewTokenizer())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	st.Close()
}
