package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/repository"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

// SignalProcessor routes generated batches to the configured sink.
type SignalProcessor struct {
	sink    repository.SignalSink
	metrics repository.Metrics
	logger  *logger.Logger
}

// NewSignalProcessor creates a SignalProcessor.
func NewSignalProcessor(sink repository.SignalSink, metrics repository.Metrics, log *logger.Logger) *SignalProcessor {
	return &SignalProcessor{
		sink:    sink,
		metrics: metrics,
		logger:  log,
	}
}

// Process persists one batch. Empty batches are skipped without touching
// the sink.
func (p *SignalProcessor) Process(ctx context.Context, batch *models.SignalBatch) error {
	if batch == nil || batch.Count == 0 {
		return nil
	}

	start := time.Now()

	if err := p.sink.Save(ctx, batch); err != nil {
		p.metrics.RecordError("persist")
		return fmt.Errorf("persist batch: %w", err)
	}

	p.metrics.RecordLatency("persist_batch", time.Since(start).Seconds())
	p.logger.Info("batch persisted", logger.Int("count", batch.Count))

	return nil
}

// Close closes the underlying sink.
func (p *SignalProcessor) Close() {
	if p.sink != nil {
		_ = p.sink.Close()
	}
}
