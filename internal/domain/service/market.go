package service

import "MacroPulse/internal/domain/models"

// PriceSimulator advances one asset's price by one stochastic tick and
// draws the synthetic volume and spike flag alongside it.
type PriceSimulator interface {
	Tick(prevPrice, volatility float64) models.Tick
}

// RegimeClassifier maps the four named returns to a regime label plus
// confidence. Each tick is classified independently; there is no memory
// of the prior regime.
type RegimeClassifier interface {
	Classify(spyRet, btcRet, tltRet, gldRet float64) models.Regime
}

// SignalGenerator maps one asset's return, spike flag, and the current
// regime label to a discrete signal.
type SignalGenerator interface {
	Generate(asset string, ret float64, volSpike bool, regime models.RegimeLabel) models.Signal
}
