package tier

import (
	"fmt"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
)

// Tier is a subscription level. Every request names one.
type Tier string

const (
	Free    Tier = "free"
	Premium Tier = "premium"
	Pro     Tier = "pro"
)

// Unbounded marks a tier with no per-request signal cap.
const Unbounded = -1

// Policy describes what a tier gets and what it costs.
type Policy struct {
	MinScore      float64
	MaxPerRequest int
	PriceUSD      float64
	DailyLimit    int
	Description   string
}

var policies = map[Tier]Policy{
	Free: {
		MinScore:      50,
		MaxPerRequest: 1,
		PriceUSD:      0,
		DailyLimit:    1,
		Description:   "Basic signal, 1 per day",
	},
	Premium: {
		MinScore:      60,
		MaxPerRequest: 10,
		PriceUSD:      3,
		DailyLimit:    10,
		Description:   "Premium signals with detailed analysis",
	},
	Pro: {
		MinScore:      70,
		MaxPerRequest: Unbounded,
		PriceUSD:      10,
		DailyLimit:    Unbounded,
		Description:   "All signals, real-time, priority access",
	},
}

// Parse validates a tier name.
func Parse(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := policies[t]; !ok {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// GetPolicy returns the policy for a known tier. Unknown tiers fall back to
// the free policy.
func (t Tier) GetPolicy() Policy {
	if p, ok := policies[t]; ok {
		return p
	}
	return policies[Free]
}

// ClampCount caps a requested batch size to the tier's per-request limit.
func (t Tier) ClampCount(requested int) int {
	p := t.GetPolicy()
	if p.MaxPerRequest == Unbounded || requested <= p.MaxPerRequest {
		return requested
	}
	return p.MaxPerRequest
}

// Redact strips a signal down to what the tier is entitled to see. Paid
// tiers get the full signal; the free tier gets exactly five fields, with
// side null when the signal carries none.
func (t Tier) Redact(sig *models.Signal) interface{} {
	if t != Free {
		return sig
	}

	var side interface{}
	if sig.Side != "" {
		side = sig.Side
	}

	return map[string]interface{}{
		"signal_id":       sig.ID,
		"market_question": sig.Question,
		"action":          sig.Action,
		"side":            side,
		"confidence":      sig.Confidence,
	}
}
