package translation

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zlang-app/zlang/internal/model"
)

const defaultBatchConcurrency = 4

// BatchResult is the outcome of one text in a batch
type BatchResult struct {
	Index  int    `json:"index"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Err    error  `json:"-"`
}

// SplitLines returns the non-blank lines of text, trimmed
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Batch translates each text independently with at most concurrency calls in
// flight. Results keep input order; a failed item does not stop the others.
func (s *translationService) Batch(ctx context.Context, texts []string, direction model.Direction, language model.Language, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(texts))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, text := range texts {
		results[i] = BatchResult{Index: i, Input: text}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			req, err := model.NewTranslationRequest(text, direction, language)
			if err != nil {
				results[i].Err = err
				return nil
			}
			output, err := s.Translate(ctx, req)
			results[i].Output = output
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}
