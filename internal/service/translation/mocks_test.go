package translation

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/repository/history"
)

// mockTranslator mocks Translator
type mockTranslator struct {
	mu            sync.Mutex
	calls         int
	TranslateFunc func(ctx context.Context, text string, direction model.Direction, language model.Language) (string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, text string, direction model.Direction, language model.Language) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, direction, language)
	}
	return "mock translation", nil
}

func (m *mockTranslator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockHistoryRepository is a mock implementation of HistoryRepository for testing
type mockHistoryRepository struct {
	mock.Mock
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockHistoryRepository) List(ctx context.Context, opts history.ListOptions) ([]*model.HistoryEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryEntry), args.Error(1)
}

func (m *mockHistoryRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
