package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticksTotal   prometheus.Counter
	tickDuration prometheus.Histogram
	lastPrice    *prometheus.GaugeVec
	regimeTotal  *prometheus.CounterVec
	signalsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "macropulse_ticks_total",
				Help: "Total number of snapshot ticks produced",
			},
		),
		tickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "macropulse_tick_duration_seconds",
				Help:    "Duration of one full snapshot tick in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_last_price",
				Help: "Last simulated price for a symbol",
			},
			[]string{"symbol"},
		),
		regimeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_regime_total",
				Help: "Ticks classified per regime label",
			},
			[]string{"label"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_signals_total",
				Help: "Signals emitted per action",
			},
			[]string{"action"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordTick records one completed tick and its duration in seconds.
func (r *Recorder) RecordTick(seconds float64) {
	r.ticksTotal.Inc()
	r.tickDuration.Observe(seconds)
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordRegime records the regime label of a tick.
func (r *Recorder) RecordRegime(label string) {
	r.regimeTotal.WithLabelValues(label).Inc()
}

// RecordSignal records an emitted signal action.
func (r *Recorder) RecordSignal(action string) {
	r.signalsTotal.WithLabelValues(action).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
