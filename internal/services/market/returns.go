package market

import (
	"sort"

	"MacroPulse/internal/domain/models"
)

// PctChange returns the signed percentage move from oldPrice to newPrice.
// A zero previous price yields 0.0; unreachable given the price floor, but
// kept as a guard.
func PctChange(newPrice, oldPrice float64) float64 {
	if oldPrice == 0 {
		return 0.0
	}
	return (newPrice - oldPrice) / oldPrice * 100.0
}

// RankByReturn orders returns strongest-first. The sort is stable, so ties
// keep their registry order.
func RankByReturn(rets []models.Return) []models.Return {
	out := make([]models.Return, len(rets))
	copy(out, rets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PctChange > out[j].PctChange
	})
	return out
}

// Leader returns the strongest asset of a ranked slice.
func Leader(ranked []models.Return) string {
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0].Asset
}

// Laggard returns the weakest asset of a ranked slice.
func Laggard(ranked []models.Return) string {
	if len(ranked) == 0 {
		return ""
	}
	return ranked[len(ranked)-1].Asset
}
