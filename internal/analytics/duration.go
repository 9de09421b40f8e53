package analytics

import (
	"tradejournal/internal/models"
)

// Trader-type labels derived from average holding duration.
const (
	TraderScalper  = "Scalper"
	TraderDay      = "Day Trader"
	TraderSwing    = "Swing Trader"
	TraderPosition = "Position Trader"
	TraderUnknown  = "Unknown"
)

// DurationStats describes holding-time behaviour across the journal.
// Samples counts the trades that contributed to the average; trades with
// malformed or non-positive durations are excluded rather than allowed to
// corrupt the mean.
type DurationStats struct {
	AvgDurationHours float64 `json:"avgDurationHours"`
	TraderType       string  `json:"traderType"`
	Samples          int     `json:"samples"`
}

// ComputeDuration averages holding durations and classifies the trader.
func ComputeDuration(journal []models.Trade) DurationStats {
	var totalHours float64
	var samples int
	for i := range journal {
		d, ok := journal[i].HoldingDuration()
		if !ok {
			continue
		}
		totalHours += d.Hours()
		samples++
	}

	if samples == 0 {
		return DurationStats{TraderType: TraderUnknown}
	}

	avg := totalHours / float64(samples)
	return DurationStats{
		AvgDurationHours: avg,
		TraderType:       ClassifyTraderType(avg),
		Samples:          samples,
	}
}

// ClassifyTraderType maps an average holding duration in hours onto a
// trader-type label. Thresholds are checked in order; first match wins.
func ClassifyTraderType(avgHours float64) string {
	switch {
	case avgHours < 1:
		return TraderScalper
	case avgHours < 24:
		return TraderDay
	case avgHours < 168:
		return TraderSwing
	default:
		return TraderPosition
	}
}
