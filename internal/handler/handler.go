// Package handler serves translation requests coming from the browser front end
// through AWS Lambda.
package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// Request is the input to the translation function.
// Direction defaults to normal-to-genz and Language to en.
type Request struct {
	Text      string `json:"text"`
	Direction string `json:"direction,omitempty"`
	Language  string `json:"language,omitempty"`
}

// Response is the output of the translation function.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	Code       string `json:"code,omitempty"`
}

// Handler turns requests into TranslationService calls
type Handler struct {
	service translation.TranslationService
	logger  *zap.Logger
}

// New creates a Handler
func New(service translation.TranslationService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Handle processes one translation request. Failures are reported in the
// Response; the returned error is reserved for failures of the function itself.
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	translationReq, err := parseRequest(req)
	if err != nil {
		return h.failure(err), nil
	}

	output, err := h.service.Translate(ctx, translationReq)
	if err != nil {
		return h.failure(err), nil
	}

	return &Response{StatusCode: http.StatusOK, Output: output}, nil
}

// parseRequest validates the wire request and applies defaults
func parseRequest(req Request) (model.TranslationRequest, error) {
	direction := model.DirectionToGenZ
	if req.Direction != "" {
		d, err := model.ParseDirection(req.Direction)
		if err != nil {
			return model.TranslationRequest{}, err
		}
		direction = d
	}

	language := model.LanguageEnglish
	if req.Language != "" {
		l, err := model.ParseLanguage(req.Language)
		if err != nil {
			return model.TranslationRequest{}, err
		}
		language = l
	}

	return model.NewTranslationRequest(req.Text, direction, language)
}

// failure maps err onto a status code and a user-facing message
func (h *Handler) failure(err error) *Response {
	code := apperrors.CodeOf(err)
	status := StatusFor(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error("translation request failed",
			zap.Error(err),
			zap.String("code", code),
			zap.Int("upstream_status", apperrors.StatusOf(err)),
		)
	}
	if code == "" {
		code = apperrors.CodeInternal
	}
	return &Response{StatusCode: status, Error: apperrors.UserMessage(err), Code: code}
}

// StatusFor returns the HTTP status reported for err
func StatusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArg:
		return http.StatusBadRequest
	case apperrors.CodeService, apperrors.CodeMalformedResponse, apperrors.CodeEmptyResult:
		return http.StatusBadGateway
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
