package analyzer

import (
	"testing"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
)

var scanTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func endIn(days int) *time.Time {
	t := scanTime.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		record    models.MarketRecord
		wantScore float64
		wantRec   models.Recommendation
	}{
		{
			name: "all rules hit",
			record: models.MarketRecord{
				ID: "m1", Question: "q",
				Volume: 2_000_000, Liquidity: 150_000,
				CurrentPrice: 0.45, EndDate: endIn(30),
			},
			wantScore: 90,
			wantRec:   models.RecommendationStrongBuy,
		},
		{
			name: "volume and liquidity only",
			record: models.MarketRecord{
				Volume: 1_500_000, Liquidity: 200_000, CurrentPrice: 0.80,
			},
			wantScore: 50,
			wantRec:   models.RecommendationBuy,
		},
		{
			name: "price zone boundaries inclusive",
			record: models.MarketRecord{
				CurrentPrice: 0.40, EndDate: endIn(7),
			},
			wantScore: 40,
			wantRec:   models.RecommendationWatch,
		},
		{
			name: "upper price boundary",
			record: models.MarketRecord{
				CurrentPrice: 0.60,
			},
			wantScore: 25,
			wantRec:   models.RecommendationSkip,
		},
		{
			name: "thresholds are strict for volume and liquidity",
			record: models.MarketRecord{
				Volume: 1_000_000, Liquidity: 100_000,
			},
			wantScore: 0,
			wantRec:   models.RecommendationSkip,
		},
		{
			name: "horizon too short",
			record: models.MarketRecord{
				EndDate: endIn(6),
			},
			wantScore: 0,
			wantRec:   models.RecommendationSkip,
		},
		{
			name: "horizon too long",
			record: models.MarketRecord{
				EndDate: endIn(91),
			},
			wantScore: 0,
			wantRec:   models.RecommendationSkip,
		},
		{
			name: "horizon upper bound inclusive",
			record: models.MarketRecord{
				EndDate: endIn(90),
			},
			wantScore: 15,
			wantRec:   models.RecommendationSkip,
		},
		{
			name: "no end date skips horizon rule",
			record: models.MarketRecord{
				Volume: 5_000_000, Liquidity: 600_000, CurrentPrice: 0.50,
			},
			wantScore: 75,
			wantRec:   models.RecommendationStrongBuy,
		},
		{
			name: "underivable price scores nothing for price",
			record: models.MarketRecord{
				Volume: 2_000_000, CurrentPrice: 0,
			},
			wantScore: 30,
			wantRec:   models.RecommendationWatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.record, scanTime)

			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Recommendation != tt.wantRec {
				t.Errorf("Recommendation = %v, want %v", got.Recommendation, tt.wantRec)
			}
			if got.MarketID != tt.record.ID || got.Volume != tt.record.Volume {
				t.Errorf("analysis did not carry record fields: %+v", got)
			}
			if got.Reasoning == nil {
				t.Error("Reasoning must never be nil")
			}
		})
	}
}

func TestAnalyzePartialDayTruncates(t *testing.T) {
	end := scanTime.Add(6*24*time.Hour + 23*time.Hour)
	rec := models.MarketRecord{EndDate: &end}

	got := Analyze(rec, scanTime)
	if got.Score != 0 {
		t.Errorf("Score = %v, want 0 for 6.96 day horizon", got.Score)
	}
}
