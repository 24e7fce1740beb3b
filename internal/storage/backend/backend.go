// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/config"
	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
	"github.com/mmynk/eatnsplit/internal/storage/memory"
	"github.com/mmynk/eatnsplit/internal/storage/sqlite"
)

// Open creates the configured store and seeds it with the demo friends when
// enabled and the registry is empty.
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var store storage.Store
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store = s
	case config.StoreMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	slog.Info("Storage initialized", "store", cfg.Store, "database", cfg.DBPath)

	if !cfg.SeedFriends {
		return store, nil
	}

	existing, err := store.ListFriends(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	if len(existing) > 0 {
		return store, nil
	}

	if err := app.Seed(ctx, store, models.InitialFriends()); err != nil {
		store.Close()
		return nil, err
	}
	slog.Info("Seeded demo friends", "count", len(models.InitialFriends()))

	return store, nil
}
