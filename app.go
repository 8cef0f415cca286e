package main

import (
	"context"
	"fmt"

	"truthonly/config"
	"truthonly/database"
	"truthonly/factcheck"
	"truthonly/history"
	"truthonly/storage"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// app holds the wired service graph shared by every command.
type app struct {
	db       *gorm.DB
	kv       storage.KV
	records  *storage.Records
	history  *history.Store
	searches *history.Searches
	service  *factcheck.Service

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	db, err := database.Open(database.ResolvePath(cfg.Database.Path, logger), logger)
	if err != nil {
		return nil, err
	}
	a := &app{db: db, records: storage.NewRecords(db)}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	switch cfg.History.Backend {
	case "redis":
		rkv, err := storage.NewRedisKV(ctx, cfg.History.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to open history backend: %w", err)
		}
		a.kv = rkv
		a.closers = append(a.closers, rkv.Close)
	default:
		a.kv = storage.NewSQLKV(db)
	}
	logger.Debug().Str("backend", cfg.History.Backend).Msg("History store ready")

	a.history = history.NewStore(a.kv, cfg.History.Prefix, logger)
	a.searches = history.NewSearches(a.kv, cfg.History.Prefix, cfg.History.Suggestions, logger)

	client := factcheck.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout, logger)
	a.service = factcheck.NewService(client, factcheck.NewMockGenerator(nil), a.history, a.records, logger)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
