package analyzer

import (
	"fmt"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
)

// Scoring rubric. Each rule contributes independently, so the maximum
// achievable score is the sum of all four.
const (
	highVolumeThreshold    = 1_000_000
	goodLiquidityThreshold = 100_000
	priceZoneLow           = 0.40
	priceZoneHigh          = 0.60
	minHorizonDays         = 7
	maxHorizonDays         = 90

	volumePoints    = 30
	liquidityPoints = 20
	pricePoints     = 25
	horizonPoints   = 15
)

// Recommendation thresholds.
const (
	strongBuyScore = 70
	buyScore       = 50
	watchScore     = 30
)

// Analyze scores one market record against the opportunity rubric as of now.
// It is a pure function of its inputs.
func Analyze(rec models.MarketRecord, now time.Time) models.OpportunityAnalysis {
	analysis := models.OpportunityAnalysis{
		MarketID:       rec.ID,
		Question:       rec.Question,
		Volume:         rec.Volume,
		Liquidity:      rec.Liquidity,
		CurrentPrice:   rec.CurrentPrice,
		Recommendation: models.RecommendationSkip,
		Reasoning:      []string{},
	}

	var score float64

	if rec.Volume > highVolumeThreshold {
		score += volumePoints
		analysis.Reasoning = append(analysis.Reasoning, "High volume market")
	}

	if rec.Liquidity > goodLiquidityThreshold {
		score += liquidityPoints
		analysis.Reasoning = append(analysis.Reasoning, "Good liquidity")
	}

	if rec.CurrentPrice >= priceZoneLow && rec.CurrentPrice <= priceZoneHigh {
		score += pricePoints
		analysis.Reasoning = append(analysis.Reasoning, "Fair pricing, room for movement")
	}

	if rec.EndDate != nil {
		days := daysUntil(*rec.EndDate, now)
		if days >= minHorizonDays && days <= maxHorizonDays {
			score += horizonPoints
			analysis.Reasoning = append(analysis.Reasoning, fmt.Sprintf("Good timeframe (%d days)", days))
		}
	}

	analysis.Score = score
	analysis.Recommendation = recommend(score)

	return analysis
}

func recommend(score float64) models.Recommendation {
	switch {
	case score >= strongBuyScore:
		return models.RecommendationStrongBuy
	case score >= buyScore:
		return models.RecommendationBuy
	case score >= watchScore:
		return models.RecommendationWatch
	default:
		return models.RecommendationSkip
	}
}

// daysUntil truncates toward zero, so a market ending in 6.9 days counts as
// 6 days out.
func daysUntil(end, now time.Time) int {
	return int(end.Sub(now) / (24 * time.Hour))
}
