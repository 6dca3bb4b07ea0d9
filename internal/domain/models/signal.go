package models

// Action is a discrete per-asset recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Signal is the per-asset output of the signal rules for one tick.
// Confidence is a percentage rounded to one decimal; it tracks the upside
// probability directly, so a SELL carries a low number, not an inverted one.
type Signal struct {
	Asset      string   `json:"asset"`
	Action     Action   `json:"action"`
	Confidence float64  `json:"confidence"`
	Drivers    []string `json:"drivers"`
}
