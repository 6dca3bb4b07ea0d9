package models

// Requests for HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"100" validate:"gte=1,lte=10000"`
}
