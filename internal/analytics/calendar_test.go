package analytics

import (
	"testing"
	"time"

	"tradejournal/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeCalendarDayBucketsByExitDate(t *testing.T) {
	journal := []models.Trade{
		{ID: 1, Date: "2024-01-01", ExitDate: "2024-01-03", PnlAmount: 100, Fee: 10},
		{ID: 2, Date: "2024-01-03", ExitDate: "2024-01-04", PnlAmount: 50},
	}

	jan1 := ComputeCalendarDay(journal, "2024-01-01")
	assert.Zero(t, jan1.TradeCount)

	jan3 := ComputeCalendarDay(journal, "2024-01-03")
	assert.Equal(t, 1, jan3.TradeCount)
	assert.Equal(t, int64(1), jan3.Trades[0].ID)
	assert.InDelta(t, 90, jan3.Pnl, 1e-9)
}

func TestComputeCalendarDayFallsBackToEntryDate(t *testing.T) {
	journal := []models.Trade{
		{ID: 1, Date: "2024-02-10", PnlAmount: -5},
	}

	s := ComputeCalendarDay(journal, "2024-02-10")
	assert.Equal(t, 1, s.TradeCount)
	assert.InDelta(t, -5, s.Pnl, 1e-9)
}

func TestComputeMonthGrid(t *testing.T) {
	journal := []models.Trade{
		{ID: 1, Date: "2024-02-01", ExitDate: "2024-02-15", PnlAmount: 20, Fee: 2},
		{ID: 2, Date: "2024-02-15", ExitDate: "2024-02-15", PnlAmount: 10},
	}

	grid := ComputeMonthGrid(journal, 2024, time.February)

	// February 2024 starts on a Thursday and is a leap month.
	assert.Equal(t, 4, grid.LeadingBlanks)
	assert.Len(t, grid.Days, 29)
	assert.Equal(t, "2024-02-01", grid.Days[0].Date)
	assert.Equal(t, "2024-02-29", grid.Days[28].Date)

	feb15 := grid.Days[14]
	assert.Equal(t, 2, feb15.TradeCount)
	assert.InDelta(t, 28, feb15.Pnl, 1e-9)
}

func TestComputeWeekGridStartsOnSunday(t *testing.T) {
	journal := []models.Trade{
		{ID: 1, Date: "2024-03-11", ExitDate: "2024-03-11", PnlAmount: 7},
	}

	// 2024-03-13 is a Wednesday; its week starts Sunday 2024-03-10.
	ref := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)
	week := ComputeWeekGrid(journal, ref)

	assert.Len(t, week, 7)
	assert.Equal(t, "2024-03-10", week[0].Date)
	assert.Equal(t, "2024-03-16", week[6].Date)
	assert.InDelta(t, 7, week[1].Pnl, 1e-9)
}
