package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/llm"
	"ragnews/internal/adapter/memstore"
	"ragnews/internal/adapter/retriever"
	"ragnews/internal/domain"
	"ragnews/internal/port"
)

func strPtr(s string) *string { return &s }

func seedStore(t *testing.T) *memstore.MemoryStore {
	t.Helper()

	st := memstore.NewMemoryStore(analyzer.NewTokenizer())
	now := time.Now()
	old := now.AddDate(0, 0, -30)

	articles := []domain.Article{
		{
			Title:       strPtr("Election results tonight"),
			Body:        strPtr("Full election results coverage from every state tonight"),
			Hostname:    "example.com",
			URL:         "https://example.com/election-today",
			PublishedAt: &now,
			CrawledAt:   now,
			Language:    "en",
			Summary:     strPtr("Election results summary"),
		},
		{
			Title:       strPtr("Election results last month"),
			Body:        strPtr("Full election results coverage from every state tonight"),
			Hostname:    "example.com",
			URL:         "https://example.com/election-old",
			PublishedAt: &old,
			CrawledAt:   now,
			Language:    "en",
			Summary:     strPtr("Older election summary"),
		},
	}
	for _, a := range articles {
		require.NoError(t, st.PutArticle(a))
	}
	return st
}

func TestExtractKeywords_DeterministicWithSeed(t *testing.T) {
	fake := &llm.Fake{}
	a := NewAnswerer(fake, nil, 10, 1.0, zap.NewNop())

	seed := int64(0)
	first, err := a.ExtractKeywords(context.Background(), "Who is the current democratic presidential nominee?", &seed)
	require.NoError(t, err)
	second, err := a.ExtractKeywords(context.Background(), "Who is the current democratic presidential nominee?", &seed)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input, model and seed must reproduce the keywords")
}

func TestAnswer_EndToEnd(t *testing.T) {
	st := seedStore(t)
	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), zap.NewNop())

	var assembled string
	fake := &llm.Fake{Handler: func(req port.CompletionRequest) (string, error) {
		if strings.Contains(req.System, "extract the most important") {
			return "election results state coverage vote ballot count tonight winner margin", nil
		}
		assembled = req.User
		return "The today-dated article leads the coverage.", nil
	}}

	a := NewAnswerer(fake, searcher, 10, 1.0, zap.NewNop())
	answer, err := a.Answer(context.Background(), "What happened in the election?")
	require.NoError(t, err)
	assert.Equal(t, "The today-dated article leads the coverage.", answer)

	// Prompt carries the original query and one "{title} - {url}" line per hit,
	// with the recent article ranked first.
	assert.Contains(t, assembled, "What happened in the election?")
	todayIdx := strings.Index(assembled, "Election results tonight - https://example.com/election-today")
	oldIdx := strings.Index(assembled, "Election results last month - https://example.com/election-old")
	require.GreaterOrEqual(t, todayIdx, 0)
	require.GreaterOrEqual(t, oldIdx, 0)
	assert.Less(t, todayIdx, oldIdx, "today-dated article must rank first")

	assert.Equal(t, 2, fake.CallCount(), "one extraction call plus one generation call")
}

func TestAnswerFrom_UsesKeywordSource(t *testing.T) {
	st := seedStore(t)
	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), zap.NewNop())

	var keywordInput string
	fake := &llm.Fake{Handler: func(req port.CompletionRequest) (string, error) {
		if strings.Contains(req.System, "extract the most important") {
			keywordInput = req.User
			return "election", nil
		}
		return "ok", nil
	}}

	a := NewAnswerer(fake, searcher, 10, 1.0, zap.NewNop())
	_, err := a.AnswerFrom(context.Background(), "short question", "a much richer source text about the election")
	require.NoError(t, err)
	assert.Equal(t, "a much richer source text about the election", keywordInput)
}

func TestAnswer_GenerationFailureSurfaces(t *testing.T) {
	st := seedStore(t)
	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), zap.NewNop())

	fake := &llm.Fake{Handler: func(req port.CompletionRequest) (string, error) {
		if strings.Contains(req.System, "extract the most important") {
			return "election", nil
		}
		return "", assert.AnError
	}}

	a := NewAnswerer(fake, searcher, 10, 1.0, zap.NewNop())
	_, err := a.Answer(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate answer")
}
