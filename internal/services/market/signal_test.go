package market

import (
	"testing"

	"MacroPulse/internal/domain/models"
)

func TestActionThresholds(t *testing.T) {
	cases := []struct {
		pUp  float64
		want models.Action
	}{
		{0.60, models.ActionBuy},
		{0.95, models.ActionBuy},
		{0.599, models.ActionHold},
		{0.50, models.ActionHold},
		{0.401, models.ActionHold},
		{0.40, models.ActionSell},
		{0.05, models.ActionSell},
	}
	for _, c := range cases {
		if got := actionFor(c.pUp); got != c.want {
			t.Fatalf("actionFor(%v) = %s, want %s", c.pUp, got, c.want)
		}
	}
}

func TestGenerateNeutral(t *testing.T) {
	g := NewRuleSignalGenerator()
	sig := g.Generate("SPY", 0, false, models.RegimeTransition)
	if sig.Action != models.ActionHold {
		t.Fatalf("expected HOLD, got %s", sig.Action)
	}
	if sig.Confidence != 50.0 {
		t.Fatalf("expected confidence 50.0, got %v", sig.Confidence)
	}
	wantDrivers := []string{"1-tick momentum: +0.00%", "regime: TRANSITION"}
	if len(sig.Drivers) != 2 || sig.Drivers[0] != wantDrivers[0] || sig.Drivers[1] != wantDrivers[1] {
		t.Fatalf("unexpected drivers %v", sig.Drivers)
	}
}

func TestGenerateRegimeBias(t *testing.T) {
	g := NewRuleSignalGenerator()

	sig := g.Generate("SPY", 1.0, false, models.RegimeRiskOn)
	if sig.Action != models.ActionBuy || sig.Confidence != 64.0 {
		t.Fatalf("SPY in RISK-ON: got %s %v, want BUY 64.0", sig.Action, sig.Confidence)
	}

	// GLD gets no bias in RISK-ON
	sig = g.Generate("GLD", 1.0, false, models.RegimeRiskOn)
	if sig.Action != models.ActionHold || sig.Confidence != 56.0 {
		t.Fatalf("GLD in RISK-ON: got %s %v, want HOLD 56.0", sig.Action, sig.Confidence)
	}

	sig = g.Generate("TLT", 1.0, false, models.RegimeRiskOff)
	if sig.Action != models.ActionBuy || sig.Confidence != 64.0 {
		t.Fatalf("TLT in RISK-OFF: got %s %v, want BUY 64.0", sig.Action, sig.Confidence)
	}
}

func TestGenerateSellKeepsRawConfidence(t *testing.T) {
	g := NewRuleSignalGenerator()
	sig := g.Generate("SPY", -5.0, false, models.RegimeTransition)
	if sig.Action != models.ActionSell {
		t.Fatalf("expected SELL, got %s", sig.Action)
	}
	// confidence is the raw upside probability, not its complement
	if sig.Confidence != 20.0 {
		t.Fatalf("expected confidence 20.0, got %v", sig.Confidence)
	}
}

func TestGenerateMomentumClamp(t *testing.T) {
	g := NewRuleSignalGenerator()
	clamped := g.Generate("SPY", -12.0, false, models.RegimeTransition)
	limit := g.Generate("SPY", -5.0, false, models.RegimeTransition)
	if clamped.Confidence != limit.Confidence || clamped.Action != limit.Action {
		t.Fatalf("momentum beyond +-5 must saturate: %v vs %v", clamped, limit)
	}
	// the driver line still reports the raw move
	if clamped.Drivers[0] != "1-tick momentum: -12.00%" {
		t.Fatalf("unexpected momentum driver %q", clamped.Drivers[0])
	}
}

func TestGenerateSpikePenaltyAndDriverCap(t *testing.T) {
	g := NewRuleSignalGenerator()
	sig := g.Generate("BTC", 0, true, models.RegimeTransition)
	if sig.Confidence != 45.0 {
		t.Fatalf("expected spike penalty to land at 45.0, got %v", sig.Confidence)
	}
	if len(sig.Drivers) != 2 {
		t.Fatalf("expected exactly 2 drivers, got %v", sig.Drivers)
	}
	if sig.Drivers[0] != "1-tick momentum: +0.00%" || sig.Drivers[1] != "regime: TRANSITION" {
		t.Fatalf("unexpected drivers %v", sig.Drivers)
	}
}

func TestGenerateConfidenceBounds(t *testing.T) {
	g := NewRuleSignalGenerator()
	regimes := []models.RegimeLabel{models.RegimeRiskOn, models.RegimeRiskOff, models.RegimeTransition}
	assets := []string{"SPY", "GLD", "BTC", "TLT"}
	for _, asset := range assets {
		for _, regime := range regimes {
			for _, spike := range []bool{false, true} {
				for ret := -10.0; ret <= 10.0; ret += 0.5 {
					sig := g.Generate(asset, ret, spike, regime)
					if sig.Confidence < 5.0 || sig.Confidence > 95.0 {
						t.Fatalf("confidence %v out of bounds for %s ret=%v spike=%v regime=%s",
							sig.Confidence, asset, ret, spike, regime)
					}
				}
			}
		}
	}
}
