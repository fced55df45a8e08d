package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/repository"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

// Scanner fetches the market listing and scores every record, keeping only
// opportunities at or above a caller-supplied score threshold.
type Scanner struct {
	source  repository.MarketSource
	metrics repository.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

// ScannerOption configures Scanner.
type ScannerOption func(*Scanner)

// WithClock overrides the scan clock. Used in tests.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *Scanner) {
		s.now = now
	}
}

// NewScanner creates a Scanner.
func NewScanner(source repository.MarketSource, metrics repository.Metrics, log *logger.Logger, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		source:  source,
		metrics: metrics,
		logger:  log,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan returns every opportunity scoring at least minScore, sorted by score
// descending. A fetch failure is not an error from the caller's perspective:
// it is logged and yields an empty result.
func (s *Scanner) Scan(ctx context.Context, minScore float64) []models.OpportunityAnalysis {
	start := s.now()

	markets, err := s.source.FetchTrending(ctx)
	if err != nil {
		s.logger.Error("failed to fetch markets", logger.Error(err))
		s.metrics.RecordError("market_fetch")
		return []models.OpportunityAnalysis{}
	}

	now := s.now()
	opportunities := make([]models.OpportunityAnalysis, 0, len(markets))
	for _, market := range markets {
		analysis := Analyze(market, now)
		if analysis.Score >= minScore {
			opportunities = append(opportunities, analysis)
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Score > opportunities[j].Score
	})

	s.metrics.RecordMarketsScanned("gamma", len(markets))
	s.metrics.RecordLatency("market_scan", s.now().Sub(start).Seconds())
	if len(opportunities) > 0 {
		s.metrics.RecordTopScore(opportunities[0].Score)
	}

	s.logger.Info("market scan complete",
		logger.Int("markets", len(markets)),
		logger.Int("opportunities", len(opportunities)),
		logger.Float64("min_score", minScore))

	return opportunities
}
