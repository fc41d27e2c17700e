// Package app holds the long-lived services shared by a wikihop invocation,
// acting as a small dependency injection container.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/JakeFAU/wikihop/internal/api"
	"github.com/JakeFAU/wikihop/internal/config"
	"github.com/JakeFAU/wikihop/internal/crawler"
	collyfetcher "github.com/JakeFAU/wikihop/internal/fetcher/colly"
	"github.com/JakeFAU/wikihop/internal/logging"
	"github.com/JakeFAU/wikihop/internal/progress"
	"github.com/JakeFAU/wikihop/internal/progress/sinks"
	"github.com/JakeFAU/wikihop/internal/search"
	"github.com/JakeFAU/wikihop/internal/wiki"
)

// App holds configuration, logging, metrics, and the progress hub. It is
// built once per command invocation and closed when the command exits.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	recent   *sinks.RecentSink
	hub      *progress.Hub
	fetcher  crawler.Fetcher
}

// New wires the progress pipeline and page fetcher for cfg.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	promSink, err := sinks.NewPrometheusSink(registry)
	if err != nil {
		return nil, fmt.Errorf("init prometheus sink: %w", err)
	}
	recent := sinks.NewRecentSink(cfg.Progress.BufferSize)
	hub := progress.NewHub(progress.Config{
		BufferSize:     cfg.Progress.BufferSize,
		MaxBatchEvents: cfg.Progress.MaxBatchEvents,
		MaxBatchWait:   cfg.BatchWait(),
		Logger:         logger.Named("progress"),
	}, sinks.NewLogSink(logger.Named("events")), promSink, recent)

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.RequestTimeout(),
	})

	logger.Debug("application services initialized",
		zap.String("target", cfg.Search.Target),
		zap.Int64("max_in_flight", cfg.Search.MaxInFlight),
		zap.Bool("skip_error_pages", cfg.Search.SkipErrorPages),
	)
	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recent:   recent,
		hub:      hub,
		fetcher:  fetcher,
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Registry exposes the Prometheus registry behind /metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Recent returns the ring of recent progress events.
func (a *App) Recent() *sinks.RecentSink {
	return a.recent
}

// SetFetcher replaces the page fetcher used by subsequent engines.
func (a *App) SetFetcher(f crawler.Fetcher) {
	a.fetcher = f
}

// NewEngine builds a search engine rooted at site.
func (a *App) NewEngine(site wiki.SiteURL) *search.Engine {
	return search.New(
		search.Config{
			Site:           site,
			Matcher:        wiki.NewMatcher(a.cfg.Search.Target),
			MaxInFlight:    a.cfg.Search.MaxInFlight,
			SkipErrorPages: a.cfg.Search.SkipErrorPages,
		},
		a.fetcher,
		nil,
		nil,
		a.hub,
		a.logger.Named("search"),
	)
}

// NewStatusServer builds the status server for engine.
func (a *App) NewStatusServer(engine *search.Engine) (*api.Server, error) {
	server, err := api.NewServer(engine, a.recent, a.registry, a.logger.Named("api"))
	if err != nil {
		return nil, fmt.Errorf("init status server: %w", err)
	}
	return server, nil
}

// Close flushes pending progress events and the logger.
func (a *App) Close(ctx context.Context) error {
	err := a.hub.Close(ctx)
	if err != nil {
		a.logger.Warn("progress hub close failed", zap.Error(err))
	}
	logging.Sync(a.logger)
	return err
}
