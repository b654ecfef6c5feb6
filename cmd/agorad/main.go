// Command agorad serves the conference registration engine over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	natsadapter "github.com/softwerkskammer/Agora-sub003/adapters/nats"
	"github.com/softwerkskammer/Agora-sub003/adapters/postgres"
	promadapter "github.com/softwerkskammer/Agora-sub003/adapters/prometheus"
	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/service"
	"github.com/softwerkskammer/Agora-sub003/internal/httpapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("agorad failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := httpapi.ParseConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	registry := prometheus.NewRegistry()
	metrics := promadapter.NewESMetrics(registry)

	store, closeStore, err := buildStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{
		service.WithLog(log),
		service.WithMetrics(metrics),
		service.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.NotifySubjects {
		notifier, err := natsadapter.NewNotifier(natsadapter.NotifierConfig{
			Connect: natsadapter.ConnectURL(cfg.NatsURL),
			Log:     log,
		})
		if err != nil {
			return fmt.Errorf("connect notifier: %w", err)
		}
		defer notifier.Close()
		opts = append(opts, service.WithNotifier(notifier))
	}

	svc := service.New(store, opts...)
	api := httpapi.NewServer(svc, httpapi.WithLog(log))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.Router(registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			slog.String("addr", cfg.Addr),
			slog.String("backend", cfg.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildStore(cfg httpapi.Config, log *slog.Logger) (es.EventStore, func(), error) {
	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return es.NewInMemoryStore(es.WithStoreLog(log)), func() {}, nil

	case "nats":
		store, err := natsadapter.NewEventStore(natsadapter.EventStoreConfig{
			Connect: natsadapter.ConnectURL(cfg.NatsURL),
			Log:     log,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect nats store: %w", err)
		}
		return store, store.Close, nil

	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := postgres.Connect(ctx, cfg.PostgresURL, postgres.WithLog(log))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
