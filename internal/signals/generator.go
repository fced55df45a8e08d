package signals

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
)

// Confidence bonuses added on top of the opportunity score.
const (
	volumeBonusHigh     = 5_000_000
	volumeBonusMid      = 2_000_000
	liquidityBonusHigh  = 500_000
	liquidityBonusMid   = 200_000
	bonusPointsHigh     = 10
	bonusPointsMid      = 5
	maxConfidence       = 100
)

// Side decision and target bounds.
const (
	sideYesBelow = 0.40
	sideNoAbove  = 0.60
	targetDelta  = 0.10
	stopDelta    = 0.05
	priceFloor   = 0.05
	priceCeil    = 0.95
)

// Sequence hands out monotonically increasing signal numbers. Every
// generated signal consumes one, whether or not it is actionable.
type Sequence interface {
	Next() int
}

// Counter is the default Sequence. The zero value starts at 0 and is safe
// for concurrent use.
type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.n
	c.n++
	return n
}

// Generator converts opportunity analyses into trading signals.
type Generator struct {
	minConfidence int
	seq           Sequence
	now           func() time.Time
}

// Option configures Generator.
type Option func(*Generator)

// WithClock overrides the signal clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator. Signals below minConfidence come out as
// SKIP. The sequence is shared across generators that should not reuse ids.
func NewGenerator(minConfidence int, seq Sequence, opts ...Option) *Generator {
	g := &Generator{
		minConfidence: minConfidence,
		seq:           seq,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate produces one signal from an analysis. SKIP signals still carry
// the confidence and reasoning so callers can see why nothing is actionable.
func (g *Generator) Generate(analysis models.OpportunityAnalysis) *models.Signal {
	now := g.now().UTC()

	sig := &models.Signal{
		ID:         g.nextID(now),
		CreatedAt:  now,
		MarketID:   analysis.MarketID,
		Question:   analysis.Question,
		Action:     models.ActionSkip,
		Confidence: confidence(analysis),
		EntryPrice: analysis.CurrentPrice,
		Reasoning:  analysis.Reasoning,
		Data: models.SupportingData{
			Volume:           analysis.Volume,
			Liquidity:        analysis.Liquidity,
			OpportunityScore: analysis.Score,
		},
	}

	if sig.Confidence < g.minConfidence {
		return sig
	}

	sig.Action = models.ActionTrade
	sig.Side = side(analysis.CurrentPrice)

	price := analysis.CurrentPrice
	if sig.Side == models.SideYes {
		sig.TargetPrice = ptr(math.Min(price+targetDelta, priceCeil))
		sig.StopLoss = ptr(math.Max(price-stopDelta, priceFloor))
	} else {
		sig.TargetPrice = ptr(math.Max(price-targetDelta, priceFloor))
		sig.StopLoss = ptr(math.Min(price+stopDelta, priceCeil))
	}

	sig.PositionSize = positionSize(sig.Confidence)

	return sig
}

// GenerateBatch generates signals for the analyses in order and returns the
// actionable ones, stopping once maxSignals TRADE signals exist. Skipped
// analyses still consume sequence numbers.
func (g *Generator) GenerateBatch(analyses []models.OpportunityAnalysis, maxSignals int) []*models.Signal {
	out := make([]*models.Signal, 0, maxSignals)

	for _, analysis := range analyses {
		sig := g.Generate(analysis)
		if sig.Action != models.ActionTrade {
			continue
		}

		out = append(out, sig)
		if len(out) >= maxSignals {
			break
		}
	}

	return out
}

func (g *Generator) nextID(now time.Time) string {
	return fmt.Sprintf("SIG-%s-%04d", now.Format("20060102150405"), g.seq.Next())
}

// confidence maps the opportunity score plus volume and liquidity bonuses to
// an integer in [0,100], rounding half away from zero.
func confidence(analysis models.OpportunityAnalysis) int {
	score := analysis.Score

	switch {
	case analysis.Volume >= volumeBonusHigh:
		score += bonusPointsHigh
	case analysis.Volume >= volumeBonusMid:
		score += bonusPointsMid
	}

	switch {
	case analysis.Liquidity >= liquidityBonusHigh:
		score += bonusPointsHigh
	case analysis.Liquidity >= liquidityBonusMid:
		score += bonusPointsMid
	}

	c := int(math.Round(score))
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// side picks which outcome token to buy. Prices inside the uncertainty zone
// default to YES until trend data exists to break the tie.
func side(price float64) models.Side {
	switch {
	case price < sideYesBelow:
		return models.SideYes
	case price > sideNoAbove:
		return models.SideNo
	default:
		return models.SideYes
	}
}

func positionSize(conf int) float64 {
	switch {
	case conf >= 90:
		return 0.10
	case conf >= 80:
		return 0.07
	case conf >= 70:
		return 0.05
	case conf >= 60:
		return 0.03
	default:
		return 0.01
	}
}

func ptr(f float64) *float64 {
	return &f
}
