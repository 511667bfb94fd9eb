// Package main is the entry point for the zlang translation Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/zlang-app/zlang/internal/config"
	"github.com/zlang-app/zlang/internal/handler"
	"github.com/zlang-app/zlang/internal/repository/history"
	"github.com/zlang-app/zlang/internal/service/translation"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	h, err := newHandler(context.Background(), logger)
	if err != nil {
		logger.Fatal("failed to initialize handler", zap.Error(err))
	}

	lambda.Start(func(ctx context.Context, event json.RawMessage) (any, error) {
		return handleRequest(ctx, h, logger, event)
	})
}

// newHandler wires the service from environment configuration once per cold start
func newHandler(ctx context.Context, logger *zap.Logger) (*handler.Handler, error) {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
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
		return nil, err
	}

	// The pool lives as long as the execution environment
	var repo translation.HistoryRepository
	if cfg.History.Driver == config.DriverPostgres {
		pool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo = history.NewPostgresRepository(pool, history.WithMaxEntries(cfg.History.MaxEntries))
	}

	return handler.New(translation.NewTranslationService(client, repo, logger), logger), nil
}

func handleRequest(ctx context.Context, h *handler.Handler, logger *zap.Logger, event json.RawMessage) (any, error) {
	// Warmup detection must come before any other processing
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, logger, warmup)
	}

	var req handler.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return h.Handle(ctx, req)
}
