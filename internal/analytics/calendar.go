package analytics

import (
	"time"

	"tradejournal/internal/models"
)

// DaySummary is the PnL realized on one calendar day. Trades are bucketed
// by their exit date, not their entry date: a position's result belongs to
// the day it closed.
type DaySummary struct {
	Date       string         `json:"date"`
	Pnl        float64        `json:"pnl"`
	TradeCount int            `json:"tradeCount"`
	Trades     []models.Trade `json:"trades"`
}

// MonthGrid lays out one civil month for the calendar view. LeadingBlanks
// is the number of empty cells before day 1 in a Sunday-first week row.
type MonthGrid struct {
	Year          int          `json:"year"`
	Month         time.Month   `json:"month"`
	LeadingBlanks int          `json:"leadingBlanks"`
	Days          []DaySummary `json:"days"`
}

// ComputeCalendarDay collects the trades that closed on the given day
// (DateLayout form) and sums their net PnL.
func ComputeCalendarDay(journal []models.Trade, day string) DaySummary {
	s := DaySummary{Date: day, Trades: []models.Trade{}}
	for i := range journal {
		if journal[i].ExitDay() != day {
			continue
		}
		s.Trades = append(s.Trades, journal[i])
		s.Pnl += journal[i].NetPnl()
		s.TradeCount++
	}
	return s
}

// ComputeMonthGrid builds the per-day summaries for a whole month plus the
// weekday offset the calendar needs for its leading empty cells.
func ComputeMonthGrid(journal []models.Trade, year int, month time.Month) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DaySummary, 0, daysInMonth),
	}
	for d := 0; d < daysInMonth; d++ {
		day := first.AddDate(0, 0, d).Format(models.DateLayout)
		grid.Days = append(grid.Days, ComputeCalendarDay(journal, day))
	}
	return grid
}

// ComputeWeekGrid returns seven consecutive day summaries starting from the
// Sunday of the week containing ref.
func ComputeWeekGrid(journal []models.Trade, ref time.Time) []DaySummary {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	week := make([]DaySummary, 0, 7)
	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d).Format(models.DateLayout)
		week = append(week, ComputeCalendarDay(journal, day))
	}
	return week
}
