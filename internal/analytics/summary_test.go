package analytics

import (
	"math"
	"testing"

	"tradejournal/internal/models"

	"github.com/stretchr/testify/assert"
)

func deposit(amount float64) models.Transaction {
	return models.Transaction{Type: models.TransactionDeposit, Amount: amount}
}

func withdrawal(amount float64) models.Transaction {
	return models.Transaction{Type: models.TransactionWithdrawal, Amount: amount}
}

func TestComputeSummaryUsesNetPnl(t *testing.T) {
	journal := []models.Trade{
		{PnlAmount: 100, Fee: 30},
	}

	s := ComputeSummary(journal, nil)

	// 100 gross minus 30 fee; the gross figure must never leak through.
	assert.Equal(t, 70.0, s.TotalPnl)
	assert.Equal(t, 1, s.Wins)
}

func TestComputeSummaryWinLossPartition(t *testing.T) {
	journal := []models.Trade{
		{PnlAmount: 50, Fee: 10},  // win
		{PnlAmount: -20, Fee: 5},  // loss
		{PnlAmount: 10, Fee: 10},  // tie: net exactly zero
		{PnlAmount: 5, Fee: 20},   // loss once the fee lands
		{PnlAmount: 0, Fee: 0},    // tie
	}

	s := ComputeSummary(journal, nil)

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 2, s.Ties)
	assert.Equal(t, s.TotalTrades, s.Wins+s.Losses+s.Ties)
}

func TestComputeSummaryProfitFactorBoundaries(t *testing.T) {
	t.Run("No trades", func(t *testing.T) {
		s := ComputeSummary(nil, nil)
		assert.Zero(t, s.ProfitFactor)
		assert.Zero(t, s.WinRate)
	})

	t.Run("Wins without losses", func(t *testing.T) {
		journal := []models.Trade{{PnlAmount: 10}, {PnlAmount: 20}}
		s := ComputeSummary(journal, nil)
		assert.True(t, math.IsInf(s.ProfitFactor, 1))
	})

	t.Run("Mixed results", func(t *testing.T) {
		journal := []models.Trade{
			{PnlAmount: 30}, {PnlAmount: 30}, {PnlAmount: -20},
		}
		s := ComputeSummary(journal, nil)
		// (2 * 30) / (1 * 20)
		assert.InDelta(t, 3.0, s.ProfitFactor, 1e-9)
	})
}

func TestComputeSummaryEndToEndScenario(t *testing.T) {
	journal := []models.Trade{
		{
			Type: models.TypeSpot, Position: models.PositionLong,
			EntryPrice: 100, ExitPrice: 110, Fee: 2,
			Date: "2024-03-01", ExitDate: "2024-03-01",
		},
		{
			Type: models.TypeSpot, Position: models.PositionLong,
			EntryPrice: 50, ExitPrice: 45, Fee: 1,
			Date: "2024-03-02", ExitDate: "2024-03-02",
		},
	}
	for i := range journal {
		journal[i].ComputePnl()
	}

	assert.InDelta(t, 10, journal[0].PnlAmount, 1e-9)
	assert.InDelta(t, -5, journal[1].PnlAmount, 1e-9)
	assert.InDelta(t, 8, journal[0].NetPnl(), 1e-9)
	assert.InDelta(t, -6, journal[1].NetPnl(), 1e-9)

	s := ComputeSummary(journal, nil)
	assert.InDelta(t, 2, s.TotalPnl, 1e-9)
	assert.Equal(t, 50, s.WinRate)
	assert.InDelta(t, 8, s.AvgWin, 1e-9)
	assert.InDelta(t, -6, s.AvgLoss, 1e-9)
	assert.InDelta(t, 1.33, s.RiskReward, 0.01)
}

func TestComputeWalletTotals(t *testing.T) {
	wallet := []models.Transaction{deposit(1000), deposit(500), withdrawal(300)}
	w := ComputeWalletTotals(wallet)
	assert.Equal(t, 1500.0, w.Deposits)
	assert.Equal(t, 300.0, w.Withdrawals)
	assert.Equal(t, 1200.0, w.Balance)
}

func TestComputeSummaryROI(t *testing.T) {
	testCases := []struct {
		name     string
		journal  []models.Trade
		wallet   []models.Transaction
		expected float64
	}{
		{
			name:     "No deposits yields zero",
			journal:  []models.Trade{{PnlAmount: 100}},
			wallet:   nil,
			expected: 0,
		},
		{
			name:    "Profit over deposits",
			journal: []models.Trade{{PnlAmount: 250, Fee: 50}},
			wallet:  []models.Transaction{deposit(1000)},
			// currentBalance = 1000 + 200; (1200 - 1000 + 0) / 1000
			expected: 20,
		},
		{
			name:    "Withdrawals preserved by the long-form formula",
			journal: []models.Trade{{PnlAmount: 100}},
			wallet:  []models.Transaction{deposit(1000), withdrawal(400)},
			// currentBalance = 600 + 100; (700 - 1000 + 400) / 1000
			expected: 10,
		},
		{
			name:    "Negative ROI",
			journal: []models.Trade{{PnlAmount: -100, Fee: 50}},
			wallet:  []models.Transaction{deposit(500)},
			expected: -30,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := ComputeSummary(tc.journal, tc.wallet)
			assert.InDelta(t, tc.expected, s.ROI, 1e-9)
		})
	}
}

func TestComputeSummaryIdempotence(t *testing.T) {
	journal := []models.Trade{
		{PnlAmount: 40, Fee: 5, Date: "2024-01-02", ExitDate: "2024-01-05"},
		{PnlAmount: -15, Fee: 1, Date: "2024-01-01", ExitDate: "2024-01-03"},
	}
	wallet := []models.Transaction{deposit(100)}

	first := ComputeSummary(journal, wallet)
	second := ComputeSummary(journal, wallet)
	assert.Equal(t, first, second)
}
