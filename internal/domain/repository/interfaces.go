package repository

import (
	"context"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
)

// MarketSource fetches the current market listing from an external provider.
type MarketSource interface {
	FetchTrending(ctx context.Context) ([]models.MarketRecord, error)
}

// SignalSink persists one generated batch of signals.
type SignalSink interface {
	Save(ctx context.Context, batch *models.SignalBatch) error
	Close() error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordMarketsScanned(source string, n int)
	RecordSignal(action, tier string)
	RecordError(kind string)
	RecordTopScore(score float64)
	RecordLatency(op string, seconds float64)
}
