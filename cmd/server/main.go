package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/config"
	"github.com/mmynk/eatnsplit/internal/metrics"
	"github.com/mmynk/eatnsplit/internal/middleware"
	"github.com/mmynk/eatnsplit/internal/service"
	"github.com/mmynk/eatnsplit/internal/storage/backend"
	"github.com/mmynk/eatnsplit/internal/web"
	"github.com/mmynk/eatnsplit/internal/websocket"
	"github.com/mmynk/eatnsplit/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	m := metrics.New()
	hub := websocket.NewHub(slog.Default().With("component", "websocket"))

	a := app.New(store,
		app.WithAvatarTemplate(cfg.AvatarURL),
		app.WithObserver(m),
		app.WithObserver(hub),
	)

	mux := http.NewServeMux()

	// Register Connect services
	friendPath, friendHandler := service.NewFriendServiceHandler(
		service.NewFriendService(a),
		connect.WithInterceptors(middleware.LoggingInterceptor(slog.Default().With("component", "rpc"))),
	)
	mux.Handle(friendPath, friendHandler)

	web.NewHandler(a).Register(mux)
	mux.Handle("GET /ws", websocket.Handler(hub))
	mux.Handle("GET /metrics", m.Handler())

	handler := middleware.Logging(middleware.CORS(m.Middleware(mux)))

	// Wrap with h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
