package market

import (
	"math/rand"
	"testing"
)

func TestTickPriceFloor(t *testing.T) {
	sim := NewRandomWalkSimulator(rand.New(rand.NewSource(1)))
	for i := 0; i < 2000; i++ {
		tick := sim.Tick(0.02, 5.0)
		if tick.NewPrice < PriceFloor {
			t.Fatalf("price %v below floor at iteration %d", tick.NewPrice, i)
		}
	}
}

func TestTickVolumePositive(t *testing.T) {
	sim := NewRandomWalkSimulator(rand.New(rand.NewSource(2)))
	for i := 0; i < 1000; i++ {
		tick := sim.Tick(100, 0.001)
		if tick.Volume < baseVolume {
			t.Fatalf("volume %d below base at iteration %d", tick.Volume, i)
		}
	}
}

func TestTickDeterministicUnderFixedSeed(t *testing.T) {
	a := NewRandomWalkSimulator(rand.New(rand.NewSource(42)))
	b := NewRandomWalkSimulator(rand.New(rand.NewSource(42)))
	for i := 0; i < 100; i++ {
		ta := a.Tick(500, 0.0009)
		tb := b.Tick(500, 0.0009)
		if ta != tb {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, ta, tb)
		}
	}
}

func TestTickSpikeRate(t *testing.T) {
	sim := NewRandomWalkSimulator(rand.New(rand.NewSource(3)))
	spikes := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if sim.Tick(100, 0.001).VolSpike {
			spikes++
		}
	}
	// expectation is 1200 out of 10000
	if spikes < 900 || spikes > 1500 {
		t.Fatalf("spike count %d far from expected rate", spikes)
	}
}
