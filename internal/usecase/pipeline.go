package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/analyzer"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/repository"
	"github.com/nicgenovese/polymarket-signal-service/internal/signals"
	"github.com/nicgenovese/polymarket-signal-service/internal/tier"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

// ErrNoOpportunities means the scan produced nothing above the tier's score
// threshold. It covers upstream fetch failures too, since those degrade to an
// empty scan.
var ErrNoOpportunities = errors.New("no opportunities found")

// Pipeline runs the scan-score-generate flow for API requests. Generators
// are created per request but share one sequence, so signal ids never
// collide across requests.
type Pipeline struct {
	scanner *analyzer.Scanner
	seq     signals.Sequence
	metrics repository.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

// PipelineOption configures Pipeline.
type PipelineOption func(*Pipeline)

// WithClock overrides the pipeline clock. Used in tests.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(scanner *analyzer.Scanner, seq signals.Sequence, metrics repository.Metrics, log *logger.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		scanner: scanner,
		seq:     seq,
		metrics: metrics,
		logger:  log,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// GetSignal returns one signal for the best current opportunity at the
// tier's score threshold.
func (p *Pipeline) GetSignal(ctx context.Context, t tier.Tier) (*models.Signal, error) {
	policy := t.GetPolicy()

	opportunities := p.scanner.Scan(ctx, policy.MinScore)
	if len(opportunities) == 0 {
		p.metrics.RecordError("no_opportunities")
		return nil, ErrNoOpportunities
	}

	gen := p.newGenerator(policy)
	sig := gen.Generate(opportunities[0])

	p.metrics.RecordSignal(string(sig.Action), string(t))
	p.logger.Info("signal generated",
		logger.String("signal_id", sig.ID),
		logger.String("tier", string(t)),
		logger.String("action", string(sig.Action)))

	return sig, nil
}

// GetBatch returns up to count actionable signals, capped by the tier.
func (p *Pipeline) GetBatch(ctx context.Context, t tier.Tier, count int) (*models.SignalBatch, error) {
	policy := t.GetPolicy()
	count = t.ClampCount(count)

	opportunities := p.scanner.Scan(ctx, policy.MinScore)
	if len(opportunities) == 0 {
		p.metrics.RecordError("no_opportunities")
		return nil, ErrNoOpportunities
	}

	gen := p.newGenerator(policy)
	batch := &models.SignalBatch{
		GeneratedAt: p.now().UTC(),
		Signals:     gen.GenerateBatch(opportunities, count),
	}
	batch.Count = len(batch.Signals)

	for _, sig := range batch.Signals {
		p.metrics.RecordSignal(string(sig.Action), string(t))
	}
	p.logger.Info("batch generated",
		logger.Int("requested", count),
		logger.Int("produced", batch.Count),
		logger.String("tier", string(t)))

	return batch, nil
}

// Run executes one standalone analysis pass with explicit thresholds,
// independent of any tier. An empty batch is a valid outcome here.
func (p *Pipeline) Run(ctx context.Context, minScore float64, minConfidence, maxSignals int) *models.SignalBatch {
	opportunities := p.scanner.Scan(ctx, minScore)

	gen := signals.NewGenerator(minConfidence, p.seq, signals.WithClock(p.now))
	batch := &models.SignalBatch{
		GeneratedAt: p.now().UTC(),
		Signals:     gen.GenerateBatch(opportunities, maxSignals),
	}
	batch.Count = len(batch.Signals)

	for _, sig := range batch.Signals {
		p.metrics.RecordSignal(string(sig.Action), "analyzer")
	}

	return batch
}

func (p *Pipeline) newGenerator(policy tier.Policy) *signals.Generator {
	return signals.NewGenerator(int(policy.MinScore), p.seq, signals.WithClock(p.now))
}
