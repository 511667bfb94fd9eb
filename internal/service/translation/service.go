package translation

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/repository/history"
)

// HistoryRepository is the sink for completed translations
type HistoryRepository interface {
	Append(ctx context.Context, entry *model.HistoryEntry) error
	List(ctx context.Context, opts history.ListOptions) ([]*model.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// TranslationService defines the main translation service interface
type TranslationService interface {
	Translate(ctx context.Context, req model.TranslationRequest) (string, error)
	RoundTrip(ctx context.Context, text string, language model.Language) (*RoundTripResult, error)
	Batch(ctx context.Context, texts []string, direction model.Direction, language model.Language, concurrency int) []BatchResult
	History(ctx context.Context, opts history.ListOptions) ([]*model.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

// RoundTripResult holds both legs of a forward-then-reverse conversion
type RoundTripResult struct {
	Input    string         `json:"input"`
	GenZ     string         `json:"genz"`
	Normal   string         `json:"normal"`
	Language model.Language `json:"language"`
}

// translationService implements TranslationService
type translationService struct {
	translator  Translator
	historyRepo HistoryRepository
	logger      *zap.Logger
}

// NewTranslationService creates a new translation service.
// historyRepo may be nil, in which case nothing is recorded.
func NewTranslationService(translator Translator, historyRepo HistoryRepository, logger *zap.Logger) TranslationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &translationService{
		translator:  translator,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Translate runs one conversion and records it in history on success
func (s *translationService) Translate(ctx context.Context, req model.TranslationRequest) (string, error) {
	// Requests built by hand skip the constructor's checks
	if _, err := model.NewTranslationRequest(req.Text, req.Direction, req.Language); err != nil {
		return "", err
	}

	output, err := s.translator.Translate(ctx, req.Text, req.Direction, req.Language)
	if err != nil {
		return "", err
	}

	s.record(ctx, req, output)
	return output, nil
}

// record appends to history; failures are logged, the translation still stands
func (s *translationService) record(ctx context.Context, req model.TranslationRequest, output string) {
	if s.historyRepo == nil {
		return
	}
	entry := &model.HistoryEntry{
		Input:     req.Text,
		Output:    output,
		Direction: req.Direction,
		Language:  req.Language,
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append history entry", zap.Error(err))
	}
}

// RoundTrip converts text to Gen Z and then back to standard phrasing
func (s *translationService) RoundTrip(ctx context.Context, text string, language model.Language) (*RoundTripResult, error) {
	forwardReq, err := model.NewTranslationRequest(text, model.DirectionToGenZ, language)
	if err != nil {
		return nil, err
	}
	genz, err := s.Translate(ctx, forwardReq)
	if err != nil {
		return nil, err
	}

	reverseReq, err := model.NewTranslationRequest(genz, forwardReq.Direction.Reverse(), language)
	if err != nil {
		return nil, err
	}
	normal, err := s.Translate(ctx, reverseReq)
	if err != nil {
		return nil, err
	}

	return &RoundTripResult{Input: text, GenZ: genz, Normal: normal, Language: language}, nil
}

// History lists recorded translations, newest first
func (s *translationService) History(ctx context.Context, opts history.ListOptions) ([]*model.HistoryEntry, error) {
	if s.historyRepo == nil {
		return []*model.HistoryEntry{}, nil
	}
	entries, err := s.historyRepo.List(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list history")
	}
	return entries, nil
}

// ClearHistory removes every recorded translation
func (s *translationService) ClearHistory(ctx context.Context) error {
	if s.historyRepo == nil {
		return nil
	}
	if err := s.historyRepo.Clear(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to clear history")
	}
	return nil
}
