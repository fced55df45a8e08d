package acp

import (
	"context"
	"errors"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/tier"
	"github.com/nicgenovese/polymarket-signal-service/internal/usecase"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

var (
	// ErrMarketLookup marks the not-yet-supported market_id parameter.
	ErrMarketLookup = errors.New("specific market lookup not yet implemented")

	// ErrUnknownEndpoint marks a dispatch to an endpoint the offering does
	// not advertise. The casing follows the published error payload.
	ErrUnknownEndpoint = errors.New("Unknown endpoint")
)

// PerformanceReport is the service track record. Tracking is not wired up
// yet, so every figure is zero.
type PerformanceReport struct {
	TotalSignals int           `json:"total_signals"`
	WinRate      float64       `json:"win_rate"`
	AvgReturn    float64       `json:"avg_return"`
	Last30Days   WindowSummary `json:"last_30_days"`
	Note         string        `json:"note"`
}

// WindowSummary aggregates outcomes over a fixed window.
type WindowSummary struct {
	Signals int `json:"signals"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
}

// Service exposes the signal pipeline through the offering's endpoints,
// applying tier gating and redaction.
type Service struct {
	pipeline *usecase.Pipeline
	offering Offering
	logger   *logger.Logger
}

// NewService creates a Service.
func NewService(pipeline *usecase.Pipeline, log *logger.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		offering: NewOffering(),
		logger:   log,
	}
}

// Offering returns the service descriptor.
func (s *Service) Offering() Offering {
	return s.offering
}

// GetSignal returns the best current signal, redacted for the tier. A
// non-empty marketID is rejected until direct lookup exists.
func (s *Service) GetSignal(ctx context.Context, t tier.Tier, marketID string) (interface{}, error) {
	if marketID != "" {
		return nil, ErrMarketLookup
	}

	sig, err := s.pipeline.GetSignal(ctx, t)
	if err != nil {
		return nil, err
	}

	return t.Redact(sig), nil
}

// BatchResponse is the batch envelope returned to consumers. Signals are
// redacted per tier, so a free batch exposes the same restricted view as a
// free single-signal request.
type BatchResponse struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Count       int           `json:"count"`
	Signals     []interface{} `json:"signals"`
}

// GetBatch returns up to count signals, capped and then redacted per tier.
func (s *Service) GetBatch(ctx context.Context, t tier.Tier, count int) (*BatchResponse, error) {
	batch, err := s.pipeline.GetBatch(ctx, t, count)
	if err != nil {
		return nil, err
	}

	out := &BatchResponse{
		GeneratedAt: batch.GeneratedAt,
		Count:       batch.Count,
		Signals:     make([]interface{}, len(batch.Signals)),
	}
	for i, sig := range batch.Signals {
		out.Signals[i] = t.Redact(sig)
	}
	return out, nil
}

// Performance returns the track record report.
func (s *Service) Performance() PerformanceReport {
	return PerformanceReport{
		Note: "Track record system coming soon",
	}
}

// HandleRequest dispatches a generic endpoint call, the entry point used by
// protocol consumers that speak in endpoint names rather than routes.
func (s *Service) HandleRequest(ctx context.Context, endpoint string, t tier.Tier, params map[string]interface{}) (interface{}, error) {
	s.logger.Debug("dispatch request",
		logger.String("endpoint", endpoint),
		logger.String("tier", string(t)))

	switch endpoint {
	case "get_signal":
		marketID, _ := params["market_id"].(string)
		return s.GetSignal(ctx, t, marketID)
	case "get_batch":
		return s.GetBatch(ctx, t, intParam(params, "count", 5))
	case "get_performance":
		return s.Performance(), nil
	default:
		return nil, ErrUnknownEndpoint
	}
}

// intParam reads an integer parameter that JSON decoding has turned into a
// float64.
func intParam(params map[string]interface{}, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}
