package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/repository/history"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// mockService mocks translation.TranslationService; only Translate is used
type mockService struct {
	TranslateFunc func(ctx context.Context, req model.TranslationRequest) (string, error)
	calls         int
}

func (m *mockService) Translate(ctx context.Context, req model.TranslationRequest) (string, error) {
	m.calls++
	return m.TranslateFunc(ctx, req)
}

func (m *mockService) RoundTrip(ctx context.Context, text string, language model.Language) (*translation.RoundTripResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockService) Batch(ctx context.Context, texts []string, direction model.Direction, language model.Language, concurrency int) []translation.BatchResult {
	return nil
}

func (m *mockService) History(ctx context.Context, opts history.ListOptions) ([]*model.HistoryEntry, error) {
	return nil, nil
}

func (m *mockService) ClearHistory(ctx context.Context) error {
	return nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name          string
		request       Request
		translateFunc func(ctx context.Context, req model.TranslationRequest) (string, error)
		want          Response
		wantCalls     int
	}{
		{
			name:    "defaults to forward english",
			request: Request{Text: "This is great"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				if req.Direction != model.DirectionToGenZ || req.Language != model.LanguageEnglish {
					return "", fmt.Errorf("unexpected request %+v", req)
				}
				return "this slaps", nil
			},
			want:      Response{StatusCode: http.StatusOK, Output: "this slaps"},
			wantCalls: 1,
		},
		{
			name:    "reverse hindi",
			request: Request{Text: "no cap", Direction: "genz-to-normal", Language: "hi"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				if req.Direction != model.DirectionToNormal || req.Language != model.LanguageHindi {
					return "", fmt.Errorf("unexpected request %+v", req)
				}
				return "सच में", nil
			},
			want:      Response{StatusCode: http.StatusOK, Output: "सच में"},
			wantCalls: 1,
		},
		{
			name:    "empty text",
			request: Request{Text: "   "},
			want:    Response{StatusCode: http.StatusBadRequest, Error: "text cannot be empty", Code: apperrors.CodeInvalidArg},
		},
		{
			name:    "unknown language",
			request: Request{Text: "hi", Language: "de"},
			want:    Response{StatusCode: http.StatusBadRequest, Error: `unsupported language: "de"`, Code: apperrors.CodeInvalidArg},
		},
		{
			name:    "unknown direction",
			request: Request{Text: "hi", Direction: "up"},
			want:    Response{StatusCode: http.StatusBadRequest, Error: `unsupported direction: "up"`, Code: apperrors.CodeInvalidArg},
		},
		{
			name:    "service error",
			request: Request{Text: "hi"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				return "", apperrors.Service(429, "rate limited", nil)
			},
			want:      Response{StatusCode: http.StatusBadGateway, Error: "Translation failed. Please try again.", Code: apperrors.CodeService},
			wantCalls: 1,
		},
		{
			name:    "malformed response",
			request: Request{Text: "hi"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				return "", apperrors.New(apperrors.CodeMalformedResponse, "invalid response format from API")
			},
			want: Response{
				StatusCode: http.StatusBadGateway,
				Error:      "Translation failed. The model did not return a usable answer.",
				Code:       apperrors.CodeMalformedResponse,
			},
			wantCalls: 1,
		},
		{
			name:    "empty result",
			request: Request{Text: "hi"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				return "", apperrors.New(apperrors.CodeEmptyResult, "empty translation received")
			},
			want: Response{
				StatusCode: http.StatusBadGateway,
				Error:      "Translation failed. The model did not return a usable answer.",
				Code:       apperrors.CodeEmptyResult,
			},
			wantCalls: 1,
		},
		{
			name:    "deadline exceeded",
			request: Request{Text: "hi"},
			translateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
				return "", context.DeadlineExceeded
			},
			want: Response{
				StatusCode: http.StatusGatewayTimeout,
				Error:      "Something went wrong. Please try again.",
				Code:       apperrors.CodeInternal,
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockService{TranslateFunc: tt.translateFunc}
			h := New(service, nil)

			got, err := h.Handle(context.Background(), tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.wantCalls, service.calls)
		})
	}
}

func TestHandle_LogsUpstreamFailures(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	service := &mockService{TranslateFunc: func(ctx context.Context, req model.TranslationRequest) (string, error) {
		return "", apperrors.Service(503, "", nil)
	}}
	h := New(service, zap.New(core))

	_, err := h.Handle(context.Background(), Request{Text: "hi"})
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), Request{Text: ""})
	require.NoError(t, err)

	entries := logs.FilterMessage("translation request failed").All()
	require.Len(t, entries, 1, "client errors are not logged")
	assert.Equal(t, int64(503), entries[0].ContextMap()["upstream_status"])
}
