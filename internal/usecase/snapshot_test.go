package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/registry"
	"MacroPulse/internal/services/market"
)

// stubSimulator maps a previous price to a fixed next price, so a tick
// produces known returns. Prices it does not know are left unchanged.
type stubSimulator struct {
	next map[string]float64
}

func (s *stubSimulator) Tick(prev, vol float64) models.Tick {
	p := prev
	if np, ok := s.next[key(prev)]; ok {
		p = np
	}
	return models.Tick{NewPrice: p, Volume: 1_500_000, VolSpike: false}
}

func key(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func newTestAggregator(t *testing.T) (*SnapshotAggregator, *registry.Registry) {
	t.Helper()
	assets := []models.Asset{
		{Symbol: models.SymbolSPY, Name: "S&P 500 (SPY)", Volatility: 0.0009},
		{Symbol: models.SymbolGLD, Name: "Gold (GLD)", Volatility: 0.0007},
		{Symbol: models.SymbolBTC, Name: "Bitcoin (BTC-USD)", Volatility: 0.0025},
		{Symbol: models.SymbolTLT, Name: "Treasuries (TLT)", Volatility: 0.0010},
	}
	prices := map[string]float64{"SPY": 500, "GLD": 190, "BTC": 50000, "TLT": 95}
	reg, err := registry.New(assets, prices)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	sim := &stubSimulator{next: map[string]float64{
		key(500):   505,
		key(190):   188,
		key(50000): 51000,
		key(95):    94,
	}}

	agg := NewSnapshotAggregator(reg, sim,
		market.NewRuleClassifier(), market.NewRuleSignalGenerator(),
		nil, nil, nil)
	agg.now = func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return agg, reg
}

func TestProduceSnapshot(t *testing.T) {
	agg, reg := newTestAggregator(t)

	snap, err := agg.Produce(context.Background())
	if err != nil {
		t.Fatalf("produce: %v", err)
	}

	if snap.TsUTC != "2025-03-01 12:00:00 UTC" {
		t.Fatalf("unexpected timestamp %q", snap.TsUTC)
	}

	spy := snap.Assets["SPY"]
	if spy.Price != 505.0 || spy.ChgPct != 1.0 {
		t.Fatalf("SPY quote: %+v", spy)
	}
	gld := snap.Assets["GLD"]
	if gld.Price != 188.0 || gld.ChgPct != -1.053 {
		t.Fatalf("GLD quote: %+v", gld)
	}
	tlt := snap.Assets["TLT"]
	if tlt.Price != 94.0 || tlt.ChgPct != -1.053 {
		t.Fatalf("TLT quote: %+v", tlt)
	}

	if snap.Detector.Leader != "BTC" || snap.Detector.Laggard != "TLT" {
		t.Fatalf("detector: %+v", snap.Detector)
	}
	wantRank := []string{"BTC", "SPY", "GLD", "TLT"}
	for i, w := range wantRank {
		if snap.Detector.RelativeStrengthRank[i].Asset != w {
			t.Fatalf("rank[%d] = %s, want %s", i, snap.Detector.RelativeStrengthRank[i].Asset, w)
		}
	}

	if snap.Regime.Label != "RISK-ON" {
		t.Fatalf("regime: %+v", snap.Regime)
	}
	if snap.Regime.Confidence != 87.4 {
		t.Fatalf("regime confidence %v, want 87.4", snap.Regime.Confidence)
	}

	wantSignals := []struct {
		asset  string
		action models.Action
		conf   float64
	}{
		{"SPY", models.ActionBuy, 64.0},
		{"GLD", models.ActionHold, 43.7},
		{"BTC", models.ActionBuy, 70.0},
		{"TLT", models.ActionHold, 43.7},
	}
	if len(snap.Signals) != len(wantSignals) {
		t.Fatalf("expected %d signals, got %d", len(wantSignals), len(snap.Signals))
	}
	for i, w := range wantSignals {
		got := snap.Signals[i]
		if got.Asset != w.asset || got.Action != w.action || got.Confidence != w.conf {
			t.Fatalf("signal[%d] = %+v, want %+v", i, got, w)
		}
		if len(got.Drivers) != 2 {
			t.Fatalf("signal[%d] drivers: %v", i, got.Drivers)
		}
	}

	// the tick committed
	if got := reg.LastPrices()["SPY"]; got != 505 {
		t.Fatalf("SPY last price %v, want 505", got)
	}
}

func TestProduceAdvancesState(t *testing.T) {
	agg, _ := newTestAggregator(t)

	if _, err := agg.Produce(context.Background()); err != nil {
		t.Fatalf("first produce: %v", err)
	}

	// the stub holds unknown prices flat, so the second tick is all zeros
	snap, err := agg.Produce(context.Background())
	if err != nil {
		t.Fatalf("second produce: %v", err)
	}
	if snap.Regime.Label != "TRANSITION" || snap.Regime.Confidence != 45.0 {
		t.Fatalf("flat tick regime: %+v", snap.Regime)
	}
	for sym, q := range snap.Assets {
		if q.ChgPct != 0.0 {
			t.Fatalf("%s chg_pct %v on flat tick", sym, q.ChgPct)
		}
	}
	for _, s := range snap.Signals {
		if s.Action != models.ActionHold || s.Confidence != 50.0 {
			t.Fatalf("flat tick signal: %+v", s)
		}
	}
	// ties keep registration order
	if snap.Detector.Leader != "SPY" || snap.Detector.Laggard != "TLT" {
		t.Fatalf("flat tick detector: %+v", snap.Detector)
	}
}
