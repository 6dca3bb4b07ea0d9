package market

import (
	"math"
	"math/rand"

	"MacroPulse/internal/domain/models"
	domsvc "MacroPulse/internal/domain/service"
)

const (
	// PriceFloor guarantees a strictly positive price after any shock.
	PriceFloor = 0.01

	baseVolume  = 1_000_000
	volumeSigma = 0.6
	spikeProb   = 0.12
)

// RandomWalkSimulator advances prices with a gaussian random walk. The
// random source is injected so ticks are reproducible under a fixed seed.
type RandomWalkSimulator struct {
	rng *rand.Rand
}

func NewRandomWalkSimulator(rng *rand.Rand) *RandomWalkSimulator {
	return &RandomWalkSimulator{rng: rng}
}

// Tick draws one price shock plus an independent volume shock and spike
// flag. Callers serialize ticks, so the rng needs no lock here.
func (s *RandomWalkSimulator) Tick(prevPrice, volatility float64) models.Tick {
	shock := s.rng.NormFloat64() * volatility
	volShock := s.rng.NormFloat64() * volumeSigma
	spike := s.rng.Float64() < spikeProb

	price := prevPrice * (1 + shock)
	if price < PriceFloor {
		price = PriceFloor
	}

	volume := int64(math.Round(baseVolume * (1 + math.Abs(volShock))))
	if volume < 0 {
		volume = 0
	}

	return models.Tick{NewPrice: price, Volume: volume, VolSpike: spike}
}

var _ domsvc.PriceSimulator = (*RandomWalkSimulator)(nil)
