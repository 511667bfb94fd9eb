package translation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// Formatter defines interface for output formatting
type Formatter interface {
	FormatTranslation(req model.TranslationRequest, output string) (string, error)
	FormatRoundTrip(result *translation.RoundTripResult) (string, error)
	FormatBatch(results []translation.BatchResult) (string, error)
	FormatHistory(entries []*model.HistoryEntry) (string, error)
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

// FormatTranslation prints only the converted text so it can be piped
func (f *TextFormatter) FormatTranslation(req model.TranslationRequest, output string) (string, error) {
	return output + "\n", nil
}

// FormatRoundTrip formats both legs of a round trip
func (f *TextFormatter) FormatRoundTrip(result *translation.RoundTripResult) (string, error) {
	var output strings.Builder
	output.WriteString(fmt.Sprintf("Original: %s\n", result.Input))
	output.WriteString(fmt.Sprintf("Gen Z:    %s\n", result.GenZ))
	output.WriteString(fmt.Sprintf("Normal:   %s\n", result.Normal))
	return output.String(), nil
}

// FormatBatch formats one line per input, failures included
func (f *TextFormatter) FormatBatch(results []translation.BatchResult) (string, error) {
	var output strings.Builder
	for _, r := range results {
		if r.Err != nil {
			output.WriteString(fmt.Sprintf("[%d] error: %s\n", r.Index+1, apperrors.UserMessage(r.Err)))
			continue
		}
		output.WriteString(fmt.Sprintf("[%d] %s\n", r.Index+1, r.Output))
	}
	return output.String(), nil
}

// FormatHistory formats history entries, newest first
func (f *TextFormatter) FormatHistory(entries []*model.HistoryEntry) (string, error) {
	if len(entries) == 0 {
		return "No history entries found\n", nil
	}

	var output strings.Builder
	for _, e := range entries {
		output.WriteString(fmt.Sprintf("%s  %s  %s\n", e.CreatedAt.Local().Format(time.DateTime), e.Direction, e.Language))
		output.WriteString(fmt.Sprintf("  %s\n", e.Input))
		output.WriteString(fmt.Sprintf("  → %s\n", e.Output))
	}
	return output.String(), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// FormatTranslation formats a single translation as JSON
func (f *JSONFormatter) FormatTranslation(req model.TranslationRequest, output string) (string, error) {
	type Output struct {
		Input     string          `json:"input"`
		Output    string          `json:"output"`
		Direction model.Direction `json:"direction"`
		Language  model.Language  `json:"language"`
	}
	return marshal(Output{Input: req.Text, Output: output, Direction: req.Direction, Language: req.Language})
}

// FormatRoundTrip formats a round trip as JSON
func (f *JSONFormatter) FormatRoundTrip(result *translation.RoundTripResult) (string, error) {
	return marshal(result)
}

// FormatBatch formats batch results as a JSON array
func (f *JSONFormatter) FormatBatch(results []translation.BatchResult) (string, error) {
	type Item struct {
		Index  int    `json:"index"`
		Input  string `json:"input"`
		Output string `json:"output,omitempty"`
		Error  string `json:"error,omitempty"`
		Code   string `json:"code,omitempty"`
	}

	items := make([]Item, 0, len(results))
	for _, r := range results {
		item := Item{Index: r.Index, Input: r.Input, Output: r.Output}
		if r.Err != nil {
			item.Error = apperrors.UserMessage(r.Err)
			item.Code = apperrors.CodeOf(r.Err)
		}
		items = append(items, item)
	}
	return marshal(items)
}

// FormatHistory formats history entries as a JSON array
func (f *JSONFormatter) FormatHistory(entries []*model.HistoryEntry) (string, error) {
	if entries == nil {
		entries = []*model.HistoryEntry{}
	}
	return marshal(entries)
}

func marshal(v any) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes) + "\n", nil
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
