package analytics

import (
	"tradejournal/internal/models"
)

// Streaks reports consecutive-result runs over the journal in exit order.
// Current is positive for an active win streak, negative for an active loss
// streak, and zero when the latest trade broke even or the journal is empty.
type Streaks struct {
	Current     int `json:"currentStreak"`
	LongestWin  int `json:"longestWinStreak"`
	LongestLoss int `json:"longestLossStreak"`
}

// ComputeStreaks walks the journal ordered by exit instant. Break-even
// trades reset neither counter; they are simply skipped.
func ComputeStreaks(journal []models.Trade) Streaks {
	var s Streaks
	var winRun, lossRun int
	lastNet := 0.0

	for _, t := range sortedByExit(journal) {
		net := t.NetPnl()
		switch {
		case net > 0:
			winRun++
			lossRun = 0
			if winRun > s.LongestWin {
				s.LongestWin = winRun
			}
		case net < 0:
			lossRun++
			winRun = 0
			if lossRun > s.LongestLoss {
				s.LongestLoss = lossRun
			}
		}
		lastNet = net
	}

	switch {
	case lastNet > 0:
		s.Current = winRun
	case lastNet < 0:
		s.Current = -lossRun
	}
	return s
}
