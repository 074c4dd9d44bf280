package usecase

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// EvalCase is one masked-prediction record: a text with masked-out spans
// and the expected fill-ins.
type EvalCase struct {
	MaskedText string   `json:"masked_text"`
	Masks      []string `json:"masks"`
}

// EvalReport summarizes a benchmark run.
type EvalReport struct {
	Total    int
	Correct  int
	Accuracy float64
}

// LoadEvalCases reads JSONL records, one case per line. Blank lines are
// skipped.
func LoadEvalCases(r io.Reader) ([]EvalCase, error) {
	var cases []EvalCase

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var c EvalCase
		if err := json.Unmarshal([]byte(text), &c); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}

// Evaluator scores the grounded answering pipeline against masked cases.
type Evaluator struct {
	answerer *Answerer
	log      *zap.Logger
}

func NewEvaluator(answerer *Answerer, log *zap.Logger) *Evaluator {
	return &Evaluator{answerer: answerer, log: log}
}

// Run answers each masked text and counts a case as correct when the
// answer mentions every expected mask value (case-insensitive). A failed
// generation counts as incorrect rather than aborting the run.
func (e *Evaluator) Run(ctx context.Context, cases []EvalCase) (*EvalReport, error) {
	report := &EvalReport{Total: len(cases)}

	for i, c := range cases {
		answer, err := e.answerer.Answer(ctx, c.MaskedText)
		if err != nil {
			e.log.Warn("evaluation case failed",
				zap.Int("case", i),
				zap.Error(err))
			continue
		}

		if matchesMasks(answer, c.Masks) {
			report.Correct++
		}
		e.log.Debug("evaluated case",
			zap.Int("case", i),
			zap.Strings("masks", c.Masks),
			zap.String("answer", answer))
	}

	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}
	return report, nil
}

func matchesMasks(answer string, masks []string) bool {
	if len(masks) == 0 {
		return false
	}
	lowered := strings.ToLower(answer)
	for _, mask := range masks {
		if !strings.Contains(lowered, strings.ToLower(mask)) {
			return false
		}
	}
	return true
}
