package analytics

import (
	"tradejournal/internal/models"
)

// EquityPoint is one step of the reconstructed equity curve. Peak carries
// the running maximum equity seen so far; Drawdown is the percentage decline
// from that peak at this point.
type EquityPoint struct {
	TradeID  int64   `json:"tradeId"`
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Peak     float64 `json:"peak"`
	Drawdown float64 `json:"drawdown"`
}

// EquityCurve is the full curve plus its drawdown statistics.
type EquityCurve struct {
	Points          []EquityPoint `json:"points"`
	MaxDrawdown     float64       `json:"maxDrawdown"`
	CurrentDrawdown float64       `json:"currentDrawdown"`
}

// ComputeEquityCurve replays the journal in exit order starting from the
// wallet balance, accumulating net PnL per trade and tracking the running
// peak for drawdown statistics.
func ComputeEquityCurve(journal []models.Trade, walletBalance float64) EquityCurve {
	curve := EquityCurve{Points: []EquityPoint{}}

	cumulative := walletBalance
	peak := walletBalance

	for _, t := range sortedByExit(journal) {
		cumulative += t.NetPnl()
		if cumulative > peak {
			peak = cumulative
		}

		var dd float64
		if peak > 0 {
			dd = (peak - cumulative) / peak * 100
		}
		if dd > curve.MaxDrawdown {
			curve.MaxDrawdown = dd
		}

		curve.Points = append(curve.Points, EquityPoint{
			TradeID:  t.ID,
			Date:     t.ExitDay(),
			Value:    cumulative,
			Peak:     peak,
			Drawdown: dd,
		})
	}

	// Terminal drawdown: how far the latest balance sits below the highest
	// balance ever reached. Reported as zero when equity is at its peak.
	if peak > 0 {
		if dd := (peak - cumulative) / peak * 100; dd > 0 {
			curve.CurrentDrawdown = dd
		}
	}
	return curve
}
