package models

import "time"

// Action says whether a signal is actionable.
type Action string

const (
	ActionSkip  Action = "SKIP"
	ActionTrade Action = "TRADE"
)

// Side is the outcome token to buy.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// SupportingData carries the market figures a signal was derived from.
type SupportingData struct {
	Volume           float64 `json:"volume"`
	Liquidity        float64 `json:"liquidity"`
	OpportunityScore float64 `json:"opportunity_score"`
}

// Signal is an actionable trade recommendation derived from exactly one
// OpportunityAnalysis. It is never mutated after creation. Side, TargetPrice
// and StopLoss are absent and PositionSize is zero when Action is SKIP.
type Signal struct {
	ID           string         `json:"signal_id"`
	CreatedAt    time.Time      `json:"timestamp"`
	MarketID     string         `json:"market_id"`
	Question     string         `json:"market_question"`
	Action       Action         `json:"action"`
	Side         Side           `json:"side,omitempty"`
	Confidence   int            `json:"confidence"`
	EntryPrice   float64        `json:"entry_price"`
	TargetPrice  *float64       `json:"target_price"`
	StopLoss     *float64       `json:"stop_loss"`
	PositionSize float64        `json:"position_size"`
	Reasoning    []string       `json:"reasoning"`
	Data         SupportingData `json:"data"`
}

// SignalBatch is the persistence envelope for a set of generated signals.
type SignalBatch struct {
	GeneratedAt time.Time `json:"generated_at"`
	Count       int       `json:"count"`
	Signals     []*Signal `json:"signals"`
}
