package analytics

import (
	"math"

	"tradejournal/internal/models"
)

// Summary holds the headline performance figures shown on the journal
// dashboard. ProfitFactor is +Inf when there are winners but no losers.
type Summary struct {
	TotalTrades  int     `json:"totalTrades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ties         int     `json:"ties"`
	WinRate      int     `json:"winRate"`
	TotalPnl     float64 `json:"totalPnl"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	RiskReward   float64 `json:"riskReward"`
	ProfitFactor float64 `json:"profitFactor"`
	ROI          float64 `json:"roi"`
}

// WalletTotals aggregates the deposit/withdrawal ledger.
type WalletTotals struct {
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
	Balance     float64 `json:"balance"`
}

// ComputeWalletTotals sums the wallet ledger. Balance is deposits minus
// withdrawals and does not include trading PnL.
func ComputeWalletTotals(wallet []models.Transaction) WalletTotals {
	var t WalletTotals
	for i := range wallet {
		switch wallet[i].Type {
		case models.TransactionDeposit:
			t.Deposits += wallet[i].Amount
		case models.TransactionWithdrawal:
			t.Withdrawals += wallet[i].Amount
		}
	}
	t.Balance = t.Deposits - t.Withdrawals
	return t
}

// ComputeSummary derives win/loss counts, averages, profit factor and ROI
// from the journal and the wallet ledger.
func ComputeSummary(journal []models.Trade, wallet []models.Transaction) Summary {
	var s Summary
	var winSum, lossSum float64

	for i := range journal {
		net := journal[i].NetPnl()
		s.TotalTrades++
		s.TotalPnl += net
		switch {
		case net > 0:
			s.Wins++
			winSum += net
		case net < 0:
			s.Losses++
			lossSum += net
		default:
			s.Ties++
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = int(math.Round(float64(s.Wins) / float64(s.TotalTrades) * 100))
	}
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}
	if s.Wins > 0 && s.Losses > 0 && s.AvgLoss != 0 {
		s.RiskReward = math.Abs(s.AvgWin / s.AvgLoss)
	}

	switch {
	case s.Losses > 0 && s.AvgLoss != 0:
		s.ProfitFactor = (float64(s.Wins) * s.AvgWin) / (float64(s.Losses) * math.Abs(s.AvgLoss))
	case s.Wins > 0:
		s.ProfitFactor = math.Inf(1)
	default:
		s.ProfitFactor = 0
	}

	s.ROI = computeROI(s.TotalPnl, wallet)
	return s
}

// computeROI keeps the long-form formula from the dashboard: the current
// balance is reconstructed from deposits, withdrawals and PnL, then compared
// against total deposits. Do not simplify it algebraically; the reported
// figure is pinned by tests in this exact shape.
func computeROI(totalPnl float64, wallet []models.Transaction) float64 {
	w := ComputeWalletTotals(wallet)
	if w.Deposits <= 0 {
		return 0
	}
	currentBalance := w.Balance + totalPnl
	return (currentBalance - w.Deposits + w.Withdrawals) / w.Deposits * 100
}
