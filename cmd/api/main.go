package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "phonefield/internal/http"
	"phonefield/internal/http/router"
	"phonefield/internal/phonefield"
	"phonefield/platform/config"
	"phonefield/platform/events"
	"phonefield/platform/logger"
	"phonefield/platform/tracing"
	"phonefield/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Install(cfg, "phonefield-api", os.Stdout)
	if err != nil {
		log.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	log.Info("tracing configured", "exporter", cfg.GetTracingExporter())

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	phoneFieldModule, err := phonefield.NewModule(cfg, eventBus, val, log)
	if err != nil {
		log.Error("failed to create phone field module", "error", err)
		os.Exit(1)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			phoneFieldModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	if terr := shutdownTracing(flushCtx); terr != nil {
		log.Error("failed to flush traces", "error", terr)
	}
	cancel()
	if err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
