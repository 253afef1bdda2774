// Package app wires configuration, logging, tracing, model artifacts, the
// decision engine, and the HTTP server into one runnable unit.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shemankubana/IncludEd/internal/artifacts"
	"github.com/shemankubana/IncludEd/internal/config"
	"github.com/shemankubana/IncludEd/internal/decision/engine"
	"github.com/shemankubana/IncludEd/internal/handlers"
	"github.com/shemankubana/IncludEd/internal/observability"
	"github.com/shemankubana/IncludEd/internal/platform/logger"
	"github.com/shemankubana/IncludEd/internal/server"
	"github.com/shemankubana/IncludEd/internal/services"
	"github.com/shemankubana/IncludEd/internal/training"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config

	server       *http.Server
	sink         training.Sink
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "included-decision-engine",
		Environment: cfg.Env,
	})

	arts, err := artifacts.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	log.Info("model artifacts loaded",
		"variant", cfg.Model.Variant,
		"version", arts.Meta.Version,
		"algorithm", arts.Meta.Algorithm,
		"actions", arts.Catalog.Size(),
	)

	eng, err := engine.New(arts.Scaler, arts.Provider, arts.Catalog, cfg.Model.DefaultConfidence)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	sink := newSink(cfg, log)

	dsvc := services.NewDecisionService(log, eng, arts, sink, services.Options{
		Variant:          cfg.Model.Variant,
		BatchParallelism: cfg.Batch.Parallelism,
	})

	dh := handlers.NewDecisionHandler(log, dsvc, cfg.Batch.MaxItems)

	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		DecisionHandler: dh,
		HTTP:            cfg.HTTP,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}

	return &App{
		Log:          log,
		Config:       cfg,
		server:       srv,
		sink:         sink,
		otelShutdown: otelShutdown,
	}, nil
}

func newSink(cfg *config.Config, log *logger.Logger) training.Sink {
	rl := cfg.Training.RewardLog
	if rl.Type == "redis" {
		log.Info("reward samples streaming to redis", "addr", rl.RedisAddr, "stream", rl.Stream)
		return training.NewRedisSink(rl.RedisAddr, rl.Stream)
	}
	return training.NewMemorySink()
}

// Run serves until ctx is canceled, then drains connections within the
// configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("http server starting", "addr", a.Config.HTTP.Addr, "env", a.Config.Env)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		_ = a.server.Shutdown(shutdownCtx)
		a.close(shutdownCtx)
		return nil
	case err := <-errCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		a.close(shutdownCtx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if err := a.sink.Close(); err != nil {
		a.Log.Warn("training sink close", "error", err)
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("tracer shutdown", "error", err)
		}
	}
	a.Log.Sync()
}
