// chromaglyphd serves the histogram rendering API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chromaglyph/internal/config"
	"chromaglyph/internal/logger"
	"chromaglyph/internal/pipeline"
	"chromaglyph/internal/render"
	"chromaglyph/internal/server"
	"chromaglyph/internal/styles"
	"chromaglyph/internal/transform"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.NewZerolog(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	var transformer styles.Transformer
	if cfg.OpenRouter.APIKey != "" {
		transformer = transform.NewClient(transform.Config{
			APIKey:   cfg.OpenRouter.APIKey,
			Model:    cfg.OpenRouter.Model,
			Endpoint: cfg.OpenRouter.Endpoint,
			Timeout:  time.Duration(cfg.OpenRouter.TimeoutSeconds) * time.Second,
		}, appLog)
	} else {
		appLog.Info("Main", "no OpenRouter API key, watercolor uses local rendering only", nil)
	}

	registry := render.NewRegistry(transformer, appLog, cfg.MaxOutputWidth)
	coord := pipeline.NewCoordinator(registry, appLog)
	srv := server.New(cfg, coord, appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Main", err, nil)
			os.Exit(1)
		}
	case <-ctx.Done():
		appLog.Info("Main", "shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("Main", err, nil)
		}
	}
}
