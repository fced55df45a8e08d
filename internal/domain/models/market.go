package models

import "time"

// MarketRecord is a normalized snapshot of one prediction market as fetched
// from the gamma API. Missing or malformed upstream fields are substituted
// with neutral defaults during normalization, never here.
type MarketRecord struct {
	ID        string
	Question  string
	Volume    float64
	Liquidity float64
	// CurrentPrice is the YES price in [0,1]; 0 means it could not be derived.
	CurrentPrice float64
	// EndDate is nil when the market carries no parseable resolution date.
	EndDate *time.Time
}

// Recommendation buckets an opportunity score.
type Recommendation string

const (
	RecommendationSkip      Recommendation = "SKIP"
	RecommendationWatch     Recommendation = "WATCH"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationStrongBuy Recommendation = "STRONG_BUY"
)

// OpportunityAnalysis is the scored view of a single MarketRecord. It is
// derived purely from the record plus the scan time; it carries no state.
type OpportunityAnalysis struct {
	MarketID       string         `json:"market_id"`
	Question       string         `json:"question"`
	Volume         float64        `json:"volume"`
	Liquidity      float64        `json:"liquidity"`
	CurrentPrice   float64        `json:"current_price"`
	Score          float64        `json:"opportunity_score"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      []string       `json:"reasoning"`
}
