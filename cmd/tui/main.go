package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/config"
	"github.com/mmynk/eatnsplit/internal/storage/backend"
	"github.com/mmynk/eatnsplit/internal/tui"
	"github.com/mmynk/eatnsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The terminal belongs to the UI; logs go to LOG_FILE or nowhere.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logging.SetupWithWriter(logOut, logging.ParseLevel(cfg.LogLevel))

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("TUI failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	a := app.New(store,
		app.WithAvatarTemplate(cfg.AvatarURL),
		app.WithObserver(app.ObserverFunc(func(c app.Change) {
			slog.Debug("State changed", "entity", c.Entity, "action", c.Action, "friend_id", c.FriendID)
		})),
	)

	_, err = tea.NewProgram(tui.New(ctx, a), tea.WithAltScreen()).Run()
	return err
}
