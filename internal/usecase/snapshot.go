package usecase

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/registry"
	"MacroPulse/internal/services/market"
	xlogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// SnapshotAggregator orchestrates one full tick: simulate every asset,
// compute returns and ranking, classify the regime, generate signals, and
// commit the new price state atomically. Concurrent callers serialize on
// the registry; a tick either commits all new prices or none.
type SnapshotAggregator struct {
	reg        *registry.Registry
	sim        domsvc.PriceSimulator
	classifier domsvc.RegimeClassifier
	signals    domsvc.SignalGenerator
	sink       *SnapshotSink
	metrics    domrepo.Metrics
	logger     *xlogger.Logger
	now        func() time.Time
}

func NewSnapshotAggregator(
	reg *registry.Registry,
	sim domsvc.PriceSimulator,
	classifier domsvc.RegimeClassifier,
	signals domsvc.SignalGenerator,
	sink *SnapshotSink,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
) *SnapshotAggregator {
	return &SnapshotAggregator{
		reg:        reg,
		sim:        sim,
		classifier: classifier,
		signals:    signals,
		sink:       sink,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Produce advances the price state by one tick and returns the snapshot.
// Calling it is an explicit state mutation, not a pure query.
func (a *SnapshotAggregator) Produce(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()
	ts := a.now()

	var snap *models.Snapshot
	var tickRows []*models.TickRow

	a.reg.Commit(func(prev map[string]float64) map[string]float64 {
		assets := a.reg.Assets()

		ticks := make(map[string]models.Tick, len(assets))
		retBySym := make(map[string]float64, len(assets))
		rets := make([]models.Return, 0, len(assets))
		next := make(map[string]float64, len(assets))

		for _, asset := range assets {
			t := a.sim.Tick(prev[asset.Symbol], asset.Volatility)
			ticks[asset.Symbol] = t
			next[asset.Symbol] = t.NewPrice

			pct := market.PctChange(t.NewPrice, prev[asset.Symbol])
			retBySym[asset.Symbol] = pct
			rets = append(rets, models.Return{Asset: asset.Symbol, PctChange: pct})
		}

		ranked := market.RankByReturn(rets)

		regime := a.classifier.Classify(
			retBySym[models.SymbolSPY],
			retBySym[models.SymbolBTC],
			retBySym[models.SymbolTLT],
			retBySym[models.SymbolGLD],
		)

		quotes := make(map[string]models.AssetQuote, len(assets))
		signals := make([]models.Signal, 0, len(assets))
		tickRows = make([]*models.TickRow, 0, len(assets))
		for _, asset := range assets {
			t := ticks[asset.Symbol]
			pct := util.Round(retBySym[asset.Symbol], 3)
			quotes[asset.Symbol] = models.AssetQuote{
				Name:     asset.Name,
				Price:    util.Round(t.NewPrice, 2),
				ChgPct:   pct,
				Volume:   t.Volume,
				VolSpike: t.VolSpike,
			}
			signals = append(signals, a.signals.Generate(asset.Symbol, retBySym[asset.Symbol], t.VolSpike, regime.Label))
			tickRows = append(tickRows, &models.TickRow{
				Ts:       ts.UTC(),
				Symbol:   asset.Symbol,
				Price:    util.Round(t.NewPrice, 2),
				ChgPct:   pct,
				Volume:   t.Volume,
				VolSpike: t.VolSpike,
				Regime:   string(regime.Label),
			})
		}

		rank := make([]models.RankEntry, 0, len(ranked))
		for _, r := range ranked {
			rank = append(rank, models.RankEntry{Asset: r.Asset, ChgPct: util.Round(r.PctChange, 3)})
		}

		snap = &models.Snapshot{
			TsUTC:  models.FormatTimestamp(ts),
			Assets: quotes,
			Detector: models.Detector{
				Leader:               market.Leader(ranked),
				Laggard:              market.Laggard(ranked),
				RelativeStrengthRank: rank,
			},
			Regime: models.RegimeView{
				Label:      string(regime.Label),
				Confidence: util.Round(regime.Confidence*100, 1),
			},
			Signals: signals,
		}

		return next
	})

	a.record(snap, time.Since(start))
	if a.sink != nil {
		a.sink.Consume(ctx, snap, tickRows)
	}

	return snap, nil
}

func (a *SnapshotAggregator) record(snap *models.Snapshot, dur time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordTick(dur.Seconds())
	a.metrics.RecordRegime(snap.Regime.Label)
	for sym, q := range snap.Assets {
		a.metrics.RecordLastPrice(sym, q.Price)
	}
	for _, s := range snap.Signals {
		a.metrics.RecordSignal(string(s.Action))
	}
}
