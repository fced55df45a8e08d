package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicgenovese/polymarket-signal-service/internal/usecase"
	"github.com/nicgenovese/polymarket-signal-service/pkg/cache"
	"github.com/nicgenovese/polymarket-signal-service/pkg/config"
	xhttp "github.com/nicgenovese/polymarket-signal-service/pkg/http"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

// Run modes.
const (
	ModeAnalyze    = "analyze"
	ModeServe      = "serve"
	ModeIntegrated = "integrated"
)

// App owns the application lifecycle: one-shot analysis runs, the HTTP
// service, or both.
type App struct {
	cfg        *config.Config
	logger     *logger.Logger
	pipeline   *usecase.Pipeline
	processor  *usecase.SignalProcessor
	handler    xhttp.Handler
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates an App. cache may be nil when market-list caching is disabled.
func New(
	cfg *config.Config,
	log *logger.Logger,
	pipeline *usecase.Pipeline,
	processor *usecase.SignalProcessor,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    log,
		pipeline:  pipeline,
		processor: processor,
		handler:   handler,
		cache:     cacheSvc,
	}
}

// Run executes the requested mode and blocks until it completes. Serving
// modes stop on SIGINT or SIGTERM.
func (a *App) Run(mode string) error {
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch mode {
	case ModeAnalyze:
		return a.analyze(ctx)
	case ModeServe:
		return a.serve(ctx)
	case ModeIntegrated:
		if err := a.analyze(ctx); err != nil {
			return err
		}
		return a.serve(ctx)
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

// analyze performs one scan-generate-persist pass with the configured
// thresholds.
func (a *App) analyze(ctx context.Context) error {
	a.logger.Info("starting market analysis",
		logger.Float64("min_score", a.cfg.Analyzer.MinScore),
		logger.Int("min_confidence", a.cfg.Analyzer.MinConfidence))

	batch := a.pipeline.Run(ctx, a.cfg.Analyzer.MinScore, a.cfg.Analyzer.MinConfidence, a.cfg.Analyzer.MaxSignals)

	if err := a.processor.Process(ctx, batch); err != nil {
		return fmt.Errorf("analysis run: %w", err)
	}

	a.logger.Info("analysis complete", logger.Int("signals", batch.Count))
	return nil
}

// serve starts the HTTP server and blocks until interrupted.
func (a *App) serve(ctx context.Context) error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}

	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}
	a.logger.Info("service started", logger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		a.logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", logger.Error(err))
		return err
	}
	return nil
}

func (a *App) close() {
	if a.processor != nil {
		a.processor.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", logger.Error(err))
		}
	}
}
