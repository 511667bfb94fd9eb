package translation

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/zlang-app/zlang/internal/config"
	"github.com/zlang-app/zlang/internal/repository/history"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// ServiceOptions tunes what CreateService wires up
type ServiceOptions struct {
	// NoHistory skips opening the history store
	NoHistory bool
	// HistoryOnly skips the translation client, so no API key is needed
	HistoryOnly bool
}

// ServiceFactory creates translation service instances
type ServiceFactory struct {
	loadConfig func() (*config.Config, error)
}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{loadConfig: config.NewConfig}
}

// CreateService creates a new translation service with all dependencies.
// The returned cleanup must be called once the service is no longer used.
func (f *ServiceFactory) CreateService(ctx context.Context, opts ServiceOptions) (translation.TranslationService, *config.Config, func(), error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := zap.L()

	var translator translation.Translator
	if opts.HistoryOnly {
		if err := cfg.ValidateHistory(); err != nil {
			return nil, nil, nil, err
		}
	} else {
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, err
		}
		client, err := translation.NewClient(translation.ClientConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Endpoint:   cfg.Endpoint,
			AppURL:     cfg.AppURL,
			AppTitle:   cfg.AppTitle,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		translator = client
	}

	cleanup := func() {}
	var repo translation.HistoryRepository
	if !opts.NoHistory {
		repo, cleanup, err = openHistory(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return translation.NewTranslationService(translator, repo, logger), cfg, cleanup, nil
}

// openHistory opens the configured history backend; driver none yields a nil repository
func openHistory(ctx context.Context, cfg *config.Config) (translation.HistoryRepository, func(), error) {
	maxEntries := history.WithMaxEntries(cfg.History.MaxEntries)

	switch cfg.History.Driver {
	case config.DriverSQLite:
		db, err := config.OpenSQLite(ctx, cfg.History.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := history.NewSQLiteRepository(ctx, db, maxEntries)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil
	case config.DriverPostgres:
		pool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return history.NewPostgresRepository(pool, maxEntries), func() { config.CloseDatabasePool(pool) }, nil
	case config.DriverNone:
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported history driver: %q", cfg.History.Driver)
	}
}
