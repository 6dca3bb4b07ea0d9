package models

// Symbols every deployment must track: the regime rules are written in
// terms of these four instruments.
const (
	SymbolSPY = "SPY"
	SymbolGLD = "GLD"
	SymbolBTC = "BTC"
	SymbolTLT = "TLT"
)

// Asset is the immutable configuration of one tracked instrument.
type Asset struct {
	Symbol     string
	Name       string
	Volatility float64 // per-tick shock sigma, > 0
}

// Tick is the ephemeral simulator output for one asset on one tick.
type Tick struct {
	NewPrice float64 // >= price floor
	Volume   int64   // > 0, synthetic traded volume
	VolSpike bool
}

// Return is a signed percentage change for one asset over one tick.
type Return struct {
	Asset     string
	PctChange float64
}
