package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

type fakeSource struct {
	records []models.MarketRecord
	err     error
}

func (f *fakeSource) FetchTrending(context.Context) ([]models.MarketRecord, error) {
	return f.records, f.err
}

type fakeMetrics struct {
	scanned  int
	errors   []string
	topScore float64
}

func (f *fakeMetrics) RecordMarketsScanned(_ string, n int) { f.scanned += n }
func (f *fakeMetrics) RecordSignal(_, _ string)             {}
func (f *fakeMetrics) RecordError(kind string)              { f.errors = append(f.errors, kind) }
func (f *fakeMetrics) RecordTopScore(score float64)         { f.topScore = score }
func (f *fakeMetrics) RecordLatency(string, float64)        {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestScannerScan(t *testing.T) {
	source := &fakeSource{records: []models.MarketRecord{
		{ID: "low", Volume: 100, Liquidity: 50},
		{ID: "mid", Volume: 1_500_000, Liquidity: 200_000, CurrentPrice: 0.80},
		{ID: "high", Volume: 2_000_000, Liquidity: 150_000, CurrentPrice: 0.45, EndDate: endIn(30)},
	}}
	metrics := &fakeMetrics{}

	s := NewScanner(source, metrics, testLogger(t), WithClock(func() time.Time { return scanTime }))

	got := s.Scan(context.Background(), 50)

	if len(got) != 2 {
		t.Fatalf("got %d opportunities, want 2", len(got))
	}
	if got[0].MarketID != "high" || got[1].MarketID != "mid" {
		t.Errorf("not sorted by score desc: %q then %q", got[0].MarketID, got[1].MarketID)
	}
	if metrics.scanned != 3 {
		t.Errorf("scanned = %d, want 3", metrics.scanned)
	}
	if metrics.topScore != 90 {
		t.Errorf("topScore = %v, want 90", metrics.topScore)
	}
}

func TestScannerScanFetchFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	metrics := &fakeMetrics{}

	s := NewScanner(source, metrics, testLogger(t))

	got := s.Scan(context.Background(), 0)

	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
	if len(metrics.errors) != 1 || metrics.errors[0] != "market_fetch" {
		t.Errorf("errors = %v, want one market_fetch", metrics.errors)
	}
}

func TestScannerScanNoMarkets(t *testing.T) {
	s := NewScanner(&fakeSource{}, &fakeMetrics{}, testLogger(t))

	if got := s.Scan(context.Background(), 0); len(got) != 0 {
		t.Fatalf("got %d opportunities, want 0", len(got))
	}
}
