// Package analytics derives journal metrics from trade and wallet records.
//
// Every function here is a pure projection: inputs are treated as read-only,
// outputs are freshly allocated, and running any computation twice over the
// same records yields identical results. The single cross-cutting invariant
// is that all classification and aggregation runs on net PnL (gross amount
// minus fee), never on the gross amount alone.
package analytics

import (
	"math"
	"sort"

	"tradejournal/internal/models"
)

// sortedByExit returns a copy of the journal ordered by exit instant,
// oldest first. Records with unparseable timestamps sort to the front
// (their instant parses to the zero time); the sort is stable so repeated
// runs over the same slice produce the same order.
func sortedByExit(journal []models.Trade) []models.Trade {
	out := make([]models.Trade, len(journal))
	copy(out, journal)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].ExitInstant()
		b, _ := out[j].ExitInstant()
		return a.Before(b)
	})
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)))
}
