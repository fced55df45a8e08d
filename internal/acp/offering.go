package acp

import (
	"github.com/nicgenovese/polymarket-signal-service/internal/tier"
)

const (
	ServiceName        = "polymarket-signals"
	ServiceDescription = "AI-powered Polymarket trading signals"
	ServiceVersion     = "1.0.0"
)

// Offering is the machine-readable service descriptor advertised to
// consumers.
type Offering struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Version     string               `json:"version"`
	Pricing     map[string]PriceTier `json:"pricing"`
	Endpoints   map[string]Endpoint  `json:"endpoints"`
}

// PriceTier describes one subscription level. Limit -1 means unlimited.
type PriceTier struct {
	Price       float64 `json:"price"`
	Limit       int     `json:"limit"`
	Description string  `json:"description"`
}

// Endpoint describes a callable operation.
type Endpoint struct {
	Method      string               `json:"method"`
	Description string               `json:"description"`
	Parameters  map[string]Parameter `json:"parameters"`
	Returns     map[string]string    `json:"returns,omitempty"`
}

// Parameter describes one endpoint parameter.
type Parameter struct {
	Type        string      `json:"type"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Description string      `json:"description,omitempty"`
}

// NewOffering builds the descriptor from the tier policies, so pricing never
// drifts from what the gating actually enforces.
func NewOffering() Offering {
	pricing := make(map[string]PriceTier, 3)
	for name, t := range map[string]tier.Tier{
		"free_tier": tier.Free,
		"premium":   tier.Premium,
		"pro":       tier.Pro,
	} {
		p := t.GetPolicy()
		pricing[name] = PriceTier{
			Price:       p.PriceUSD,
			Limit:       p.DailyLimit,
			Description: p.Description,
		}
	}

	return Offering{
		Name:        ServiceName,
		Description: ServiceDescription,
		Version:     ServiceVersion,
		Pricing:     pricing,
		Endpoints: map[string]Endpoint{
			"get_signal": {
				Method:      "POST",
				Description: "Get a trading signal",
				Parameters: map[string]Parameter{
					"tier": {
						Type:     "string",
						Required: true,
						Enum:     []string{"free", "premium", "pro"},
					},
					"market_id": {
						Type:        "string",
						Required:    false,
						Description: "Specific market ID (optional)",
					},
				},
				Returns: map[string]string{
					"signal":     "object",
					"confidence": "integer",
					"reasoning":  "array",
				},
			},
			"get_batch": {
				Method:      "POST",
				Description: "Get multiple signals",
				Parameters: map[string]Parameter{
					"tier": {
						Type:     "string",
						Required: true,
					},
					"count": {
						Type:     "integer",
						Required: false,
						Default:  5,
					},
				},
			},
			"get_performance": {
				Method:      "GET",
				Description: "Get track record and performance metrics",
				Parameters:  map[string]Parameter{},
				Returns: map[string]string{
					"total_signals": "integer",
					"win_rate":      "float",
					"avg_return":    "float",
				},
			},
		},
	}
}
