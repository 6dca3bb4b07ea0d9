package models

// RegimeLabel is a coarse macro-market classification.
type RegimeLabel string

const (
	RegimeRiskOn     RegimeLabel = "RISK-ON"
	RegimeRiskOff    RegimeLabel = "RISK-OFF"
	RegimeTransition RegimeLabel = "TRANSITION"
)

// Regime is derived fresh each tick from the joint return vector.
// Confidence stays within [0.45, 0.95].
type Regime struct {
	Label      RegimeLabel
	Confidence float64
}
