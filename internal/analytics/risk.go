package analytics

import (
	"math"

	"tradejournal/internal/models"
)

// RiskMetrics describes position-sizing discipline across the journal.
// The consistency scores need enough samples to mean anything: the
// Available flags are false when there were fewer than two usable inputs,
// and the presentation layer shows "N/A" in that case.
type RiskMetrics struct {
	AvgRiskPerTrade          float64 `json:"avgRiskPerTrade"`
	RiskConsistencyScore     float64 `json:"riskConsistencyScore"`
	RiskConsistencyAvailable bool    `json:"riskConsistencyAvailable"`
	RewardToRisk             float64 `json:"rewardToRisk"`
	PnlConsistency           float64 `json:"pnlConsistency"`
	PnlConsistencyAvailable  bool    `json:"pnlConsistencyAvailable"`
}

// ComputeRiskMetrics derives risk statistics from margin costs and net PnL.
// Missing margin costs count as zero toward the average risk, matching how
// the journal treats partially filled records.
func ComputeRiskMetrics(journal []models.Trade) RiskMetrics {
	var m RiskMetrics
	if len(journal) == 0 {
		return m
	}

	margins := make([]float64, 0, len(journal))
	nonzeroMargins := make([]float64, 0, len(journal))
	nets := make([]float64, 0, len(journal))
	var totalPnl float64

	for i := range journal {
		margins = append(margins, journal[i].MarginCost)
		if journal[i].MarginCost != 0 {
			nonzeroMargins = append(nonzeroMargins, journal[i].MarginCost)
		}
		net := journal[i].NetPnl()
		nets = append(nets, net)
		totalPnl += net
	}

	m.AvgRiskPerTrade = mean(margins)

	// Risk consistency: 100 minus the coefficient of variation of the
	// nonzero margin costs, floored at zero.
	if len(nonzeroMargins) >= 2 {
		avg := mean(nonzeroMargins)
		if avg != 0 {
			cv := stdDev(nonzeroMargins) / avg * 100
			m.RiskConsistencyScore = math.Max(0, 100-cv)
			m.RiskConsistencyAvailable = true
		}
	}

	avgReward := totalPnl / float64(len(journal))
	if m.AvgRiskPerTrade != 0 {
		m.RewardToRisk = math.Abs(avgReward / m.AvgRiskPerTrade)
	}

	if len(nets) >= 2 {
		m.PnlConsistency = stdDev(nets)
		m.PnlConsistencyAvailable = true
	}
	return m
}
