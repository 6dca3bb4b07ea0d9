package market

import (
	"math"

	"MacroPulse/internal/domain/models"
	domsvc "MacroPulse/internal/domain/service"
)

type regimeInputs struct {
	spy, btc, tlt, gld float64
}

type regimeRule struct {
	match      func(in regimeInputs) bool
	label      models.RegimeLabel
	confidence func(in regimeInputs) float64
}

// RuleClassifier evaluates a fixed, ordered rule table. The order is part
// of the contract: RISK-ON is checked before RISK-OFF, so the first match
// wins; the trailing TRANSITION rule always matches.
type RuleClassifier struct {
	rules []regimeRule
}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{rules: []regimeRule{
		{
			match: func(in regimeInputs) bool {
				return in.spy > 0 && in.btc > 0 && in.tlt < 0
			},
			label: models.RegimeRiskOn,
			confidence: func(in regimeInputs) float64 {
				return math.Min(0.95, 0.55+0.08*(math.Abs(in.spy)+math.Abs(in.btc)+math.Abs(in.tlt)))
			},
		},
		{
			match: func(in regimeInputs) bool {
				return in.tlt > 0 && in.gld > 0 && in.spy < 0
			},
			label: models.RegimeRiskOff,
			confidence: func(in regimeInputs) float64 {
				return math.Min(0.95, 0.55+0.08*(math.Abs(in.tlt)+math.Abs(in.gld)+math.Abs(in.spy)))
			},
		},
		{
			match: func(regimeInputs) bool { return true },
			label: models.RegimeTransition,
			confidence: func(in regimeInputs) float64 {
				return math.Min(0.75, 0.45+0.04*(math.Abs(in.spy)+math.Abs(in.btc)))
			},
		},
	}}
}

// Classify maps the four named returns to a regime. Confidence always lands
// in [0.45, 0.95].
func (c *RuleClassifier) Classify(spyRet, btcRet, tltRet, gldRet float64) models.Regime {
	in := regimeInputs{spy: spyRet, btc: btcRet, tlt: tltRet, gld: gldRet}
	for _, r := range c.rules {
		if r.match(in) {
			return models.Regime{Label: r.label, Confidence: r.confidence(in)}
		}
	}
	// unreachable: the last rule always matches
	return models.Regime{Label: models.RegimeTransition, Confidence: 0.45}
}

var _ domsvc.RegimeClassifier = (*RuleClassifier)(nil)
