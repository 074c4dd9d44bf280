package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ragnews/internal/domain"
	"ragnews/internal/port"
)

// keywordPrompt requests exactly 10 space-separated keywords. A bounded
// keyword count keeps retrieval precision predictable across queries.
const keywordPrompt = `You are an advanced assistant specializing in text analysis.
Your task is to extract the most important and relevant keywords from the following text.
The keywords should capture the core topics and entities mentioned in the text.
Responses should come in the format of 'keyword keyword keyword keyword'.
Output exactly 10 keywords.
Output only keywords, nothing more.
Do not preface the keywords with "here are the keywords," and do not explain how the keywords were found or what their sources are.`

// answerPrompt is the persona for the final grounded generation.
const answerPrompt = `You are an advanced assistant specializing in analyzing news articles and providing insights on current events.
Your task is to generate an accurate response to user queries based on the context provided by the articles.
Your response should include no extraneous words and should not explain your thinking.`

// Answerer produces grounded answers: keyword extraction, ranked
// retrieval, prompt assembly, generation.
type Answerer struct {
	llm      port.Completer
	searcher port.Searcher
	limit    int
	alpha    float64
	log      *zap.Logger
}

func NewAnswerer(llm port.Completer, searcher port.Searcher, limit int, alpha float64, log *zap.Logger) *Answerer {
	if limit <= 0 {
		limit = 10
	}
	if alpha <= 0 {
		alpha = 1.0
	}
	return &Answerer{
		llm:      llm,
		searcher: searcher,
		limit:    limit,
		alpha:    alpha,
		log:      log,
	}
}

// ExtractKeywords derives the retrieval keyword string from text. The same
// text, model and seed must yield the same keywords.
func (a *Answerer) ExtractKeywords(ctx context.Context, text string, seed *int64) (string, error) {
	keywords, err := a.llm.Complete(ctx, port.CompletionRequest{
		System: keywordPrompt,
		User:   text,
		Seed:   seed,
	})
	if err != nil {
		return "", fmt.Errorf("extract keywords: %w", err)
	}
	return strings.TrimSpace(keywords), nil
}

// Answer generates a grounded answer for query, using the query itself as
// the keyword source.
func (a *Answerer) Answer(ctx context.Context, query string) (string, error) {
	return a.AnswerFrom(ctx, query, query)
}

// AnswerFrom generates a grounded answer for query, extracting retrieval
// keywords from keywordSource instead of the query itself.
func (a *Answerer) AnswerFrom(ctx context.Context, query, keywordSource string) (string, error) {
	keywords, err := a.ExtractKeywords(ctx, keywordSource, nil)
	if err != nil {
		return "", err
	}
	a.log.Debug("extracted keywords", zap.String("keywords", keywords))

	articles, err := a.searcher.Search(keywords, a.limit, a.alpha)
	if err != nil {
		return "", fmt.Errorf("retrieve articles: %w", err)
	}
	a.log.Debug("retrieved articles", zap.Int("count", len(articles)))

	answer, err := a.llm.Complete(ctx, port.CompletionRequest{
		System: answerPrompt,
		User:   assembleUserPrompt(query, articles),
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}

// assembleUserPrompt joins the original query with one "{title} - {url}"
// line per retrieved article.
func assembleUserPrompt(query string, articles []domain.SearchResult) string {
	var lines []string
	for _, article := range articles {
		lines = append(lines, fmt.Sprintf("%s - %s", article.Title, article.URL))
	}

	var sb strings.Builder
	sb.WriteString("Here is the original text:\n")
	sb.WriteString(query)
	sb.WriteString("\nHere are relevant articles:\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\nBased on the original text and the relevant articles, please generate a detailed, accurate, and informative response to the user query.")
	return sb.String()
}
