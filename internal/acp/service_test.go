package acp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/analyzer"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/signals"
	"github.com/nicgenovese/polymarket-signal-service/internal/tier"
	"github.com/nicgenovese/polymarket-signal-service/internal/usecase"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

type fakeSource struct {
	records []models.MarketRecord
}

func (f *fakeSource) FetchTrending(context.Context) ([]models.MarketRecord, error) {
	return f.records, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordMarketsScanned(string, int) {}
func (noopMetrics) RecordSignal(string, string)      {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordTopScore(float64)           {}
func (noopMetrics) RecordLatency(string, float64)    {}

func newService(t *testing.T, records []models.MarketRecord) *Service {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	scanner := analyzer.NewScanner(&fakeSource{records: records}, noopMetrics{}, log, analyzer.WithClock(clock))
	pipeline := usecase.NewPipeline(scanner, &signals.Counter{}, noopMetrics{}, log, usecase.WithClock(clock))

	return NewService(pipeline, log)
}

func strongMarkets(n int) []models.MarketRecord {
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.MarketRecord, n)
	for i := range out {
		out[i] = models.MarketRecord{
			ID: "m", Question: "q",
			Volume: 2_000_000, Liquidity: 150_000,
			CurrentPrice: 0.45, EndDate: &end,
		}
	}
	return out
}

func TestGetSignalFreeTierRedacted(t *testing.T) {
	svc := newService(t, strongMarkets(1))

	out, err := svc.GetSignal(context.Background(), tier.Free, "")
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}

	m, ok := out.(map[string]interface{})
	if !ok {
		t.Fatalf("free tier response is %T, want redacted map", out)
	}
	if len(m) != 5 {
		t.Errorf("redacted map has %d keys, want 5: %v", len(m), m)
	}
	for _, key := range []string{"signal_id", "market_question", "action", "side", "confidence"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestGetSignalPaidTierFull(t *testing.T) {
	svc := newService(t, strongMarkets(1))

	out, err := svc.GetSignal(context.Background(), tier.Premium, "")
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}

	sig, ok := out.(*models.Signal)
	if !ok {
		t.Fatalf("premium response is %T, want *models.Signal", out)
	}
	if sig.TargetPrice == nil {
		t.Error("full signal must carry targets")
	}
}

func TestGetSignalMarketLookupUnsupported(t *testing.T) {
	svc := newService(t, strongMarkets(1))

	_, err := svc.GetSignal(context.Background(), tier.Pro, "0x123")
	if !errors.Is(err, ErrMarketLookup) {
		t.Fatalf("err = %v, want ErrMarketLookup", err)
	}
}

func TestHandleRequestDispatch(t *testing.T) {
	svc := newService(t, strongMarkets(3))
	ctx := context.Background()

	out, err := svc.HandleRequest(ctx, "get_batch", tier.Premium, map[string]interface{}{"count": float64(2)})
	if err != nil {
		t.Fatalf("get_batch: %v", err)
	}
	batch, ok := out.(*BatchResponse)
	if !ok || batch.Count != 2 {
		t.Errorf("get_batch returned %#v, want batch of 2", out)
	}

	out, err = svc.HandleRequest(ctx, "get_performance", tier.Free, nil)
	if err != nil {
		t.Fatalf("get_performance: %v", err)
	}
	report, ok := out.(PerformanceReport)
	if !ok || report.Note == "" {
		t.Errorf("get_performance returned %#v", out)
	}

	_, err = svc.HandleRequest(ctx, "get_quotes", tier.Free, nil)
	if !errors.Is(err, ErrUnknownEndpoint) {
		t.Fatalf("err = %v, want ErrUnknownEndpoint", err)
	}
	if err.Error() != "Unknown endpoint" {
		t.Errorf("error text = %q, want %q", err.Error(), "Unknown endpoint")
	}
}

func TestHandleRequestBatchDefaultCount(t *testing.T) {
	svc := newService(t, strongMarkets(8))

	out, err := svc.HandleRequest(context.Background(), "get_batch", tier.Pro, map[string]interface{}{})
	if err != nil {
		t.Fatalf("get_batch: %v", err)
	}
	if batch := out.(*BatchResponse); batch.Count != 5 {
		t.Errorf("default count batch = %d, want 5", batch.Count)
	}
}

func TestGetBatchFreeTierRedacted(t *testing.T) {
	svc := newService(t, strongMarkets(3))

	batch, err := svc.GetBatch(context.Background(), tier.Free, 3)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if batch.Count != 1 {
		t.Fatalf("free batch count = %d, want 1", batch.Count)
	}

	m, ok := batch.Signals[0].(map[string]interface{})
	if !ok {
		t.Fatalf("free batch signal is %T, want redacted map", batch.Signals[0])
	}
	if len(m) != 5 {
		t.Errorf("redacted signal has %d keys, want 5: %v", len(m), m)
	}
	for _, key := range []string{"entry_price", "target_price", "stop_loss", "position_size", "reasoning", "data"} {
		if _, ok := m[key]; ok {
			t.Errorf("free batch signal exposes %q", key)
		}
	}
}

func TestGetBatchPaidTierFull(t *testing.T) {
	svc := newService(t, strongMarkets(2))

	batch, err := svc.GetBatch(context.Background(), tier.Premium, 2)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	for _, raw := range batch.Signals {
		sig, ok := raw.(*models.Signal)
		if !ok {
			t.Fatalf("premium batch signal is %T, want *models.Signal", raw)
		}
		if sig.TargetPrice == nil {
			t.Error("paid batch signal must carry targets")
		}
	}
}

func TestOfferingMirrorsPolicies(t *testing.T) {
	off := NewOffering()

	if off.Name != ServiceName || off.Version != ServiceVersion {
		t.Errorf("offering header wrong: %+v", off)
	}
	if got := off.Pricing["premium"].Price; got != 3 {
		t.Errorf("premium price = %v, want 3", got)
	}
	if got := off.Pricing["pro"].Limit; got != -1 {
		t.Errorf("pro limit = %v, want -1", got)
	}
	if len(off.Endpoints) != 3 {
		t.Errorf("endpoints = %d, want 3", len(off.Endpoints))
	}
	if off.Endpoints["get_signal"].Method != "POST" {
		t.Errorf("get_signal method = %q", off.Endpoints["get_signal"].Method)
	}
}
