// Package config handles configuration for eatnsplit: defaults, then
// environment variables, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mmynk/eatnsplit/internal/models"
)

// Storage backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds runtime settings.
//
// Fields:
//   - Addr: HTTP listen address.
//   - Store: registry backend, "memory" or "sqlite".
//   - DBPath: SQLite database path; ":memory:" keeps it in process.
//   - LogLevel: debug, info, warn or error.
//   - AvatarURL: default image template of the add-friend form.
//   - SeedFriends: start with the demo friends.
type Config struct {
	Addr        string
	Store       string
	DBPath      string
	LogLevel    string
	AvatarURL   string
	SeedFriends bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.Store = StoreMemory
	c.DBPath = ":memory:"
	c.LogLevel = "info"
	c.AvatarURL = models.DefaultAvatarURL
	c.SeedFriends = true
}

// Load builds a Config from defaults, the process environment and args
// (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		return fmt.Errorf("db path required for %s store", StoreSQLite)
	}
	return nil
}

// applyEnv overlays environment variables:
//
//	ADDR, STORE, DB_PATH, LOG_LEVEL, AVATAR_URL, SEED_FRIENDS
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("ADDR", &c.Addr)
	str("STORE", &c.Store)
	str("DB_PATH", &c.DBPath)
	str("LOG_LEVEL", &c.LogLevel)
	str("AVATAR_URL", &c.AvatarURL)

	if v, ok := lookup("SEED_FRIENDS"); ok && v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_FRIENDS %q: %w", v, err)
		}
		c.SeedFriends = seed
	}
	return nil
}

// parseFlags overlays command-line flags.
//
//	-a string   listen address (e.g. ":8080")
//	-s string   store backend (memory, sqlite)
//	-d string   SQLite database path
//	-l string   log level
//	-i string   avatar URL template
//	-seed bool  start with the demo friends
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("eatnsplit", flag.ContinueOnError)

	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to listen on")
	fs.StringVar(&c.Store, "s", c.Store, "store backend (memory, sqlite)")
	fs.StringVar(&c.DBPath, "d", c.DBPath, "SQLite database path")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.AvatarURL, "i", c.AvatarURL, "avatar URL template")
	fs.BoolVar(&c.SeedFriends, "seed", c.SeedFriends, "start with the demo friends")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}
