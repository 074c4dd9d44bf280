package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/llm"
	"ragnews/internal/adapter/retriever"
	"ragnews/internal/port"
)

func TestLoadEvalCases(t *testing.T) {
	input := `{"masked_text": "[MASK0] won the election", "masks": ["Biden"]}

{"masked_text": "[MASK0] met [MASK1]", "masks": ["Harris", "Trump"]}
`
	cases, err := LoadEvalCases(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "[MASK0] won the election", cases[0].MaskedText)
	assert.Equal(t, []string{"Harris", "Trump"}, cases[1].Masks)
}

func TestLoadEvalCases_BadLine(t *testing.T) {
	_, err := LoadEvalCases(strings.NewReader("{\"masked_text\": \"ok\", \"masks\": []}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestEvaluatorRun(t *testing.T) {
	st := seedStore(t)
	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), zap.NewNop())

	fake := &llm.Fake{Handler: func(req port.CompletionRequest) (string, error) {
		if strings.Contains(req.System, "extract the most important") {
			return "election", nil
		}
		// Names the masked entity only when the case asks about the winner.
		if strings.Contains(req.User, "won") {
			return "Biden won according to tonight's results.", nil
		}
		return "No idea.", nil
	}}

	answerer := NewAnswerer(fake, searcher, 10, 1.0, zap.NewNop())
	evaluator := NewEvaluator(answerer, zap.NewNop())

	report, err := evaluator.Run(context.Background(), []EvalCase{
		{MaskedText: "[MASK0] won the election", Masks: []string{"biden"}},
		{MaskedText: "[MASK0] conceded", Masks: []string{"Trump"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Correct)
	assert.InDelta(t, 0.5, report.Accuracy, 1e-9)
}

func TestEvaluatorRun_FailedCaseCountsIncorrect(t *testing.T) {
	st := seedStore(t)
	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), zap.NewNop())

	calls := 0
	fake := &llm.Fake{Handler: func(req port.CompletionRequest) (string, error) {
		calls++
		if calls == 1 {
			return "", assert.AnError
		}
		if strings.Contains(req.System, "extract the most important") {
			return "election", nil
		}
		return "Biden.", nil
	}}

	answerer := NewAnswerer(fake, searcher, 10, 1.0, zap.NewNop())
	evaluator := NewEvaluator(answerer, zap.NewNop())

	report, err := evaluator.Run(context.Background(), []EvalCase{
		{MaskedText: "case one", Masks: []string{"Biden"}},
		{MaskedText: "case two", Masks: []string{"Biden"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Correct)
}
