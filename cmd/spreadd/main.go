package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/spreads-go/internal/adapters/ads"
	"github.com/randomtoy/spreads-go/internal/adapters/decks"
	"github.com/randomtoy/spreads-go/internal/adapters/history"
	httpadapter "github.com/randomtoy/spreads-go/internal/adapters/http"
	"github.com/randomtoy/spreads-go/internal/adapters/layouts"
	"github.com/randomtoy/spreads-go/internal/adapters/readings"
	"github.com/randomtoy/spreads-go/internal/app"
	"github.com/randomtoy/spreads-go/internal/config"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	registry := layouts.NewEmbeddedRegistry()
	if err := registry.Err(); err != nil {
		logger.Error("failed to load layouts", "error", err)
		os.Exit(1)
	}

	historyStore, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	readingsClient := readings.NewClient(
		&http.Client{Timeout: cfg.ReadingsTimeout},
		cfg.ReadingsBaseURL,
		cfg.ReadingsToken,
		logger,
	)

	timings := app.DefaultTimings()
	timings.PollInterval = cfg.PollInterval
	timings.LongWait = cfg.LongWait
	timings.HardTimeout = cfg.HardTimeout

	orch := app.NewOrchestrator(app.Deps{
		Layouts:  registry,
		Decks:    decks.NewEmbeddedStore(stdRNG{}),
		Readings: readingsClient,
		Ads:      ads.Unavailable{},
		History:  historyStore,
		RNG:      stdRNG{},
		Timings:  timings,
		Locale:   cfg.Locale,
		Logger:   logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(orch)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
