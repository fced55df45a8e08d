package gamma

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/pkg/util"
)

// rawMarket mirrors the loosely-typed gamma API market payload. Numeric
// fields arrive as JSON numbers or quoted strings depending on the endpoint
// version, so everything is decoded leniently.
type rawMarket struct {
	ID         json.RawMessage `json:"id"`
	Question   string          `json:"question"`
	Volume     json.RawMessage `json:"volume"`
	Liquidity  json.RawMessage `json:"liquidity"`
	Outcomes   []rawOutcome    `json:"outcomes"`
	EndDateISO string          `json:"end_date_iso"`
}

type rawOutcome struct {
	Price json.RawMessage `json:"price"`
}

// normalize converts one raw market into a typed MarketRecord. All default
// substitution for missing or malformed fields happens here and nowhere else:
// numbers degrade to 0, an unusable price degrades to 0 (meaning "underived"),
// and an unparseable end date degrades to nil.
func normalize(raw rawMarket) models.MarketRecord {
	rec := models.MarketRecord{
		ID:        rawString(raw.ID),
		Question:  raw.Question,
		Volume:    rawFloat(raw.Volume),
		Liquidity: rawFloat(raw.Liquidity),
	}

	if len(raw.Outcomes) > 0 {
		p := rawFloat(raw.Outcomes[0].Price)
		if p >= 0 && p <= 1 {
			rec.CurrentPrice = p
		}
	}

	if t, ok := util.ParseTime(raw.EndDateISO); ok {
		rec.EndDate = &t
	}

	return rec
}

// rawFloat decodes a JSON number or a quoted numeric string; anything else
// yields 0.
func rawFloat(m json.RawMessage) float64 {
	if len(m) == 0 {
		return 0
	}
	s := strings.Trim(string(m), `"`)
	return util.ParseFloatDefault(s, 0)
}

// rawString decodes a JSON string or number as a string id.
func rawString(m json.RawMessage) string {
	if len(m) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(m, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
