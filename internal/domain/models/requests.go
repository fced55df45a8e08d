package models

// Requests for the signal service HTTP endpoints. Defined in domain for
// consistency and reuse.

type SignalRequest struct {
	Tier     string `json:"tier" validate:"required,oneof=free premium pro"`
	MarketID string `json:"market_id" validate:"omitempty"`
}

type BatchRequest struct {
	Tier  string `json:"tier" validate:"required,oneof=free premium pro"`
	Count int    `json:"count" default:"5" validate:"gte=1,lte=100"`
}

// DispatchRequest is the marketplace-facing envelope: a named endpoint with
// free-form parameters, routed through the service dispatcher.
type DispatchRequest struct {
	Endpoint string                 `json:"endpoint" validate:"required"`
	Tier     string                 `json:"tier" validate:"required"`
	Params   map[string]interface{} `json:"params"`
}
