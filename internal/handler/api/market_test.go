package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/registry"
	"MacroPulse/internal/services/market"
	"MacroPulse/internal/usecase"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*MarketEchoHandler, *echo.Echo) {
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

	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	sim := market.NewRandomWalkSimulator(rand.New(rand.NewSource(7)))
	agg := usecase.NewSnapshotAggregator(reg, sim,
		market.NewRuleClassifier(), market.NewRuleSignalGenerator(),
		nil, nil, logger)

	h := NewMarketEchoHandler(logger, agg, nil, nil, 0)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func TestLiveReturnsRawSnapshot(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/live", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(snap.TsUTC, " UTC") {
		t.Fatalf("timestamp %q", snap.TsUTC)
	}
	if len(snap.Assets) != 4 {
		t.Fatalf("expected 4 quotes, got %d", len(snap.Assets))
	}
	if len(snap.Signals) != 4 {
		t.Fatalf("expected 4 signals, got %d", len(snap.Signals))
	}
	switch snap.Regime.Label {
	case "RISK-ON", "RISK-OFF", "TRANSITION":
	default:
		t.Fatalf("unexpected regime %q", snap.Regime.Label)
	}
	// raw snapshot body, no envelope
	if strings.Contains(rec.Body.String(), `"status"`) {
		t.Fatalf("live response must not be wrapped: %s", rec.Body.String())
	}
}

func TestLiveAdvancesPriceState(t *testing.T) {
	_, e := newTestHandler(t)

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/live", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/live", nil))

	var a, b models.Snapshot
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	same := true
	for sym, q := range a.Assets {
		if b.Assets[sym].Price != q.Price {
			same = false
		}
	}
	if same {
		t.Fatalf("second poll did not advance any price")
	}
}

func TestHistoryUnavailableWithoutStore(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history?symbol=SPY&n=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "ERR_UNAVAILABLE") {
		t.Fatalf("expected unavailable error, got %s", rec.Body.String())
	}
}

func TestHistoryRejectsMissingSymbol(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"status":400`) {
		t.Fatalf("expected 400 envelope, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ERR_REQUIRED") {
		t.Fatalf("expected required-field error, got %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"history":"disabled"`) {
		t.Fatalf("expected disabled history, got %s", rec.Body.String())
	}
}
