package analytics

import (
	"testing"

	"tradejournal/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeEquityCurve(t *testing.T) {
	journal := tradesWithNets(100, -50, 200)

	curve := ComputeEquityCurve(journal, 1000)

	assert.Len(t, curve.Points, 3)
	assert.InDelta(t, 1100, curve.Points[0].Value, 1e-9)
	assert.InDelta(t, 1050, curve.Points[1].Value, 1e-9)
	assert.InDelta(t, 1250, curve.Points[2].Value, 1e-9)

	// The dip from 1100 to 1050.
	assert.InDelta(t, 50.0/1100*100, curve.MaxDrawdown, 1e-9)
	// Final point is the all-time peak, so no terminal drawdown.
	assert.Zero(t, curve.CurrentDrawdown)
}

func TestComputeEquityCurvePeakIsMonotone(t *testing.T) {
	journal := tradesWithNets(50, -120, 30, -10, 200, -40)

	curve := ComputeEquityCurve(journal, 500)

	prevPeak := 500.0
	for _, p := range curve.Points {
		assert.GreaterOrEqual(t, p.Peak, prevPeak)
		assert.GreaterOrEqual(t, p.Peak, p.Value)
		prevPeak = p.Peak
	}
	assert.GreaterOrEqual(t, curve.MaxDrawdown, curve.CurrentDrawdown)
}

func TestComputeEquityCurveTerminalDrawdown(t *testing.T) {
	journal := tradesWithNets(100, -200)

	curve := ComputeEquityCurve(journal, 1000)

	// Peak 1100, final balance 900.
	assert.InDelta(t, 200.0/1100*100, curve.CurrentDrawdown, 1e-9)
	assert.InDelta(t, curve.MaxDrawdown, curve.CurrentDrawdown, 1e-9)
}

func TestComputeEquityCurveEmptyJournal(t *testing.T) {
	curve := ComputeEquityCurve(nil, 1000)
	assert.Empty(t, curve.Points)
	assert.Zero(t, curve.MaxDrawdown)
	assert.Zero(t, curve.CurrentDrawdown)
}

func TestComputeEquityCurveZeroBalanceDoesNotDivide(t *testing.T) {
	journal := tradesWithNets(-100)

	curve := ComputeEquityCurve(journal, 0)

	// Peak never rises above zero, so drawdown percentages stay defined.
	assert.Zero(t, curve.MaxDrawdown)
	assert.Zero(t, curve.CurrentDrawdown)
	assert.InDelta(t, -100, curve.Points[0].Value, 1e-9)
}

func TestComputeEquityCurveReplaysInExitOrder(t *testing.T) {
	journal := []models.Trade{
		{ID: 2, Date: "2024-01-02", ExitDate: "2024-01-05", PnlAmount: -50},
		{ID: 1, Date: "2024-01-01", ExitDate: "2024-01-02", PnlAmount: 100},
	}

	curve := ComputeEquityCurve(journal, 0)
	assert.Equal(t, int64(1), curve.Points[0].TradeID)
	assert.Equal(t, int64(2), curve.Points[1].TradeID)
	assert.InDelta(t, 50, curve.Points[1].Value, 1e-9)
}
