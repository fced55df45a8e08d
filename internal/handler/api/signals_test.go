package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nicgenovese/polymarket-signal-service/internal/acp"
	"github.com/nicgenovese/polymarket-signal-service/internal/analyzer"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/signals"
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

func newHandler(t *testing.T, records []models.MarketRecord) *SignalsHandler {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	scanner := analyzer.NewScanner(&fakeSource{records: records}, noopMetrics{}, log, analyzer.WithClock(clock))
	pipeline := usecase.NewPipeline(scanner, &signals.Counter{}, noopMetrics{}, log, usecase.WithClock(clock))

	return NewSignalsHandler(log, acp.NewService(pipeline, log))
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

func doRequest(t *testing.T, h *SignalsHandler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()

	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func TestGetSignalFreeTierKeys(t *testing.T) {
	h := newHandler(t, strongMarkets(1))

	rec := doRequest(t, h, http.MethodPost, "/api/signal", `{"tier": "free"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", env.Status, rec.Body.String())
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := []string{"action", "confidence", "market_question", "side", "signal_id"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("free tier keys = %v, want %v", keys, want)
	}
}

func TestGetSignalPremiumFullPayload(t *testing.T) {
	h := newHandler(t, strongMarkets(1))

	rec := doRequest(t, h, http.MethodPost, "/api/signal", `{"tier": "premium"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}

	var sig models.Signal
	if err := json.Unmarshal(env.Data, &sig); err != nil {
		t.Fatalf("decode signal: %v", err)
	}
	if sig.Action != models.ActionTrade || sig.TargetPrice == nil {
		t.Errorf("unexpected signal: %+v", sig)
	}
	if sig.Confidence != 95 {
		t.Errorf("Confidence = %d, want 95", sig.Confidence)
	}
}

func TestGetSignalValidation(t *testing.T) {
	h := newHandler(t, strongMarkets(1))

	rec := doRequest(t, h, http.MethodPost, "/api/signal", `{"tier": "gold"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", env.Status)
	}

	rec = doRequest(t, h, http.MethodPost, "/api/signal", `{}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing tier", env.Status)
	}
}

func TestGetSignalNoOpportunities(t *testing.T) {
	h := newHandler(t, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/signal", `{"tier": "pro"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", env.Status)
	}
}

func TestGetSignalMarketLookup(t *testing.T) {
	h := newHandler(t, strongMarkets(1))

	rec := doRequest(t, h, http.MethodPost, "/api/signal", `{"tier": "pro", "market_id": "0x1"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", env.Status)
	}
}

type batchPayload struct {
	Count   int               `json:"count"`
	Signals []json.RawMessage `json:"signals"`
}

func TestGetBatchDefaultsAndClamp(t *testing.T) {
	h := newHandler(t, strongMarkets(8))

	rec := doRequest(t, h, http.MethodPost, "/api/batch", `{"tier": "premium"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", env.Status, rec.Body.String())
	}

	var batch batchPayload
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if batch.Count != 5 {
		t.Errorf("default batch count = %d, want 5", batch.Count)
	}

	rec = doRequest(t, h, http.MethodPost, "/api/batch", `{"tier": "free", "count": 7}`)
	env = decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if batch.Count != 1 {
		t.Errorf("free batch count = %d, want 1", batch.Count)
	}
}

func TestGetBatchFreeTierKeys(t *testing.T) {
	h := newHandler(t, strongMarkets(3))

	rec := doRequest(t, h, http.MethodPost, "/api/batch", `{"tier": "free", "count": 3}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", env.Status, rec.Body.String())
	}

	var batch batchPayload
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if len(batch.Signals) != 1 {
		t.Fatalf("free batch has %d signals, want 1", len(batch.Signals))
	}

	var sig map[string]json.RawMessage
	if err := json.Unmarshal(batch.Signals[0], &sig); err != nil {
		t.Fatalf("decode signal: %v", err)
	}

	keys := make([]string, 0, len(sig))
	for k := range sig {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := []string{"action", "confidence", "market_question", "side", "signal_id"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("free batch signal keys = %v, want %v", keys, want)
	}
}

func TestGetBatchPremiumFullSignals(t *testing.T) {
	h := newHandler(t, strongMarkets(2))

	rec := doRequest(t, h, http.MethodPost, "/api/batch", `{"tier": "premium", "count": 2}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}

	var batch batchPayload
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	for _, raw := range batch.Signals {
		var sig models.Signal
		if err := json.Unmarshal(raw, &sig); err != nil {
			t.Fatalf("decode signal: %v", err)
		}
		if sig.TargetPrice == nil || sig.EntryPrice == 0 {
			t.Errorf("premium batch signal missing paid fields: %+v", sig)
		}
	}
}

func TestGetOffering(t *testing.T) {
	h := newHandler(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/offering", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}

	var off acp.Offering
	if err := json.Unmarshal(env.Data, &off); err != nil {
		t.Fatalf("decode offering: %v", err)
	}
	if off.Name != acp.ServiceName || len(off.Endpoints) != 3 {
		t.Errorf("offering = %+v", off)
	}
}

func TestGetPerformance(t *testing.T) {
	h := newHandler(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/performance", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}

	var report acp.PerformanceReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.TotalSignals != 0 || report.Note == "" {
		t.Errorf("report = %+v", report)
	}
}

func TestDispatch(t *testing.T) {
	h := newHandler(t, strongMarkets(3))

	rec := doRequest(t, h, http.MethodPost, "/api/acp",
		`{"endpoint": "get_batch", "tier": "pro", "params": {"count": 2}}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", env.Status, rec.Body.String())
	}

	var batch batchPayload
	if err := json.Unmarshal(env.Data, &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if batch.Count != 2 {
		t.Errorf("batch count = %d, want 2", batch.Count)
	}

	rec = doRequest(t, h, http.MethodPost, "/api/acp",
		`{"endpoint": "get_quotes", "tier": "pro"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Errorf("unknown endpoint status = %d, want 400", env.Status)
	}
	if !strings.Contains(rec.Body.String(), "Unknown endpoint") {
		t.Errorf("error payload missing documented message: %s", rec.Body.String())
	}
}
