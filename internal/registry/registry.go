package registry

import (
	"fmt"
	"sync"

	"MacroPulse/internal/domain/models"
)

// RequiredSymbols are the instruments the regime rules depend on. A registry
// missing any of them is a configuration error, fatal at startup.
var RequiredSymbols = []string{
	models.SymbolSPY,
	models.SymbolBTC,
	models.SymbolTLT,
	models.SymbolGLD,
}

// Registry is the static asset catalog plus the shared last-price state.
// The price map is replaced as a whole inside Commit; readers never observe
// a partially updated tick.
type Registry struct {
	assets []models.Asset
	index  map[string]int

	mu   sync.Mutex
	last map[string]float64
}

// New builds a registry from the configured assets and their starting prices.
func New(assets []models.Asset, startPrices map[string]float64) (*Registry, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("registry: no assets configured")
	}

	index := make(map[string]int, len(assets))
	last := make(map[string]float64, len(assets))
	for i, a := range assets {
		if a.Symbol == "" {
			return nil, fmt.Errorf("registry: asset %d has empty symbol", i)
		}
		if _, dup := index[a.Symbol]; dup {
			return nil, fmt.Errorf("registry: duplicate symbol %s", a.Symbol)
		}
		if a.Volatility <= 0 {
			return nil, fmt.Errorf("registry: %s volatility must be > 0, got %v", a.Symbol, a.Volatility)
		}
		p, ok := startPrices[a.Symbol]
		if !ok || p <= 0 {
			return nil, fmt.Errorf("registry: %s needs a positive start price", a.Symbol)
		}
		index[a.Symbol] = i
		last[a.Symbol] = p
	}

	for _, sym := range RequiredSymbols {
		if _, ok := index[sym]; !ok {
			return nil, fmt.Errorf("registry: required symbol %s is not configured", sym)
		}
	}

	return &Registry{assets: assets, index: index, last: last}, nil
}

// Assets returns the tracked assets in registration order.
func (r *Registry) Assets() []models.Asset {
	out := make([]models.Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// Commit runs one tick transaction: fn receives the previous prices and
// returns the full replacement map. The read and the swap happen under one
// lock, so concurrent ticks serialize and no partial update is ever visible.
// A nil result leaves the state unchanged.
func (r *Registry) Commit(fn func(prev map[string]float64) map[string]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := make(map[string]float64, len(r.last))
	for k, v := range r.last {
		prev[k] = v
	}
	if next := fn(prev); next != nil {
		r.last = next
	}
}

// LastPrices returns a copy of the current price state.
func (r *Registry) LastPrices() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]float64, len(r.last))
	for k, v := range r.last {
		out[k] = v
	}
	return out
}
