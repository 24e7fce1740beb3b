package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/eatnsplit/internal/config"
)

func TestOpenSeedsMemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	friends, err := store.ListFriends(context.Background())
	require.NoError(t, err)
	assert.Len(t, friends, 3)
}

func TestOpenWithoutSeed(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SeedFriends = false

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	friends, err := store.ListFriends(context.Background())
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestOpenSQLiteSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Store = config.StoreSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "friends.db")

	store, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	friends, err := store.ListFriends(ctx)
	require.NoError(t, err)
	assert.Len(t, friends, 3, "reopening must not seed twice")
}

func TestOpenUnknownStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Store = "bolt"

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}
