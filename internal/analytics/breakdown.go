package analytics

import (
	"sort"

	"tradejournal/internal/models"
)

// TopGroupCount is how many entries the "top performers" views keep.
const TopGroupCount = 5

// SetupStats aggregates performance for one named setup.
type SetupStats struct {
	Setup    string  `json:"setup"`
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	TotalPnl float64 `json:"totalPnl"`
	WinRate  float64 `json:"winRate"`
	AvgPnl   float64 `json:"avgPnl"`
}

// LeverageStats aggregates performance for one leverage level across
// futures trades.
type LeverageStats struct {
	Leverage int     `json:"leverage"`
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	TotalPnl float64 `json:"totalPnl"`
	WinRate  float64 `json:"winRate"`
	AvgPnl   float64 `json:"avgPnl"`
}

// TickerStats aggregates performance and exposure for one instrument.
type TickerStats struct {
	Ticker        string  `json:"ticker"`
	Trades        int     `json:"trades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	SpotTrades    int     `json:"spotTrades"`
	FuturesTrades int     `json:"futuresTrades"`
	TotalPnl      float64 `json:"totalPnl"`
	WinRate       float64 `json:"winRate"`
	AvgPnl        float64 `json:"avgPnl"`
}

// MarketFilter selects which instrument types a ticker view includes.
type MarketFilter string

const (
	MarketAll     MarketFilter = "All"
	MarketSpot    MarketFilter = "Spot"
	MarketFutures MarketFilter = "Futures"
)

// bucket is the shared accumulator behind every group-by view.
type bucket struct {
	trades, wins, losses      int
	spotTrades, futuresTrades int
	totalPnl                  float64
}

func (b *bucket) add(t *models.Trade) {
	b.trades++
	net := t.NetPnl()
	b.totalPnl += net
	switch {
	case net > 0:
		b.wins++
	case net < 0:
		b.losses++
	}
	switch t.Type {
	case models.TypeSpot:
		b.spotTrades++
	case models.TypeFutures:
		b.futuresTrades++
	}
}

func (b *bucket) winRate() float64 {
	if b.trades == 0 {
		return 0
	}
	return float64(b.wins) / float64(b.trades) * 100
}

func (b *bucket) avgPnl() float64 {
	if b.trades == 0 {
		return 0
	}
	return b.totalPnl / float64(b.trades)
}

// groupBy folds the journal into buckets keyed by keyFn, remembering
// first-seen key order so repeated runs stay deterministic.
func groupBy(journal []models.Trade, keyFn func(*models.Trade) (string, bool)) ([]string, map[string]*bucket) {
	var order []string
	groups := make(map[string]*bucket)
	for i := range journal {
		key, ok := keyFn(&journal[i])
		if !ok {
			continue
		}
		b, seen := groups[key]
		if !seen {
			b = &bucket{}
			groups[key] = b
			order = append(order, key)
		}
		b.add(&journal[i])
	}
	return order, groups
}

// ComputeSetupBreakdown aggregates per-setup performance. Trades without a
// setup land in the "Unknown" bucket. Result is sorted by total PnL,
// best first.
func ComputeSetupBreakdown(journal []models.Trade) []SetupStats {
	order, groups := groupBy(journal, func(t *models.Trade) (string, bool) {
		return t.SetupKey(), true
	})

	out := make([]SetupStats, 0, len(order))
	for _, key := range order {
		b := groups[key]
		out = append(out, SetupStats{
			Setup:    key,
			Trades:   b.trades,
			Wins:     b.wins,
			Losses:   b.losses,
			TotalPnl: b.totalPnl,
			WinRate:  b.winRate(),
			AvgPnl:   b.avgPnl(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPnl > out[j].TotalPnl })
	return out
}

// TopSetups returns the best-performing setups, at most TopGroupCount.
func TopSetups(journal []models.Trade) []SetupStats {
	all := ComputeSetupBreakdown(journal)
	if len(all) > TopGroupCount {
		all = all[:TopGroupCount]
	}
	return all
}

// ComputeLeverageBreakdown aggregates futures trades by leverage level,
// sorted by leverage ascending. Spot trades are not part of this view.
func ComputeLeverageBreakdown(journal []models.Trade) []LeverageStats {
	groups := make(map[int]*bucket)
	var levels []int
	for i := range journal {
		t := &journal[i]
		if t.Type != models.TypeFutures {
			continue
		}
		lev := t.Leverage
		if lev < 1 {
			lev = 1
		}
		b, seen := groups[lev]
		if !seen {
			b = &bucket{}
			groups[lev] = b
			levels = append(levels, lev)
		}
		b.add(t)
	}
	sort.Ints(levels)

	out := make([]LeverageStats, 0, len(levels))
	for _, lev := range levels {
		b := groups[lev]
		out = append(out, LeverageStats{
			Leverage: lev,
			Trades:   b.trades,
			Wins:     b.wins,
			Losses:   b.losses,
			TotalPnl: b.totalPnl,
			WinRate:  b.winRate(),
			AvgPnl:   b.avgPnl(),
		})
	}
	return out
}

// ComputeTickerBreakdown aggregates per-ticker performance and exposure,
// sorted by total PnL, best first.
func ComputeTickerBreakdown(journal []models.Trade) []TickerStats {
	order, groups := groupBy(journal, func(t *models.Trade) (string, bool) {
		return t.Ticker, t.Ticker != ""
	})

	out := make([]TickerStats, 0, len(order))
	for _, key := range order {
		b := groups[key]
		out = append(out, TickerStats{
			Ticker:        key,
			Trades:        b.trades,
			Wins:          b.wins,
			Losses:        b.losses,
			SpotTrades:    b.spotTrades,
			FuturesTrades: b.futuresTrades,
			TotalPnl:      b.totalPnl,
			WinRate:       b.winRate(),
			AvgPnl:        b.avgPnl(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPnl > out[j].TotalPnl })
	return out
}

// FilterTickers keeps tickers with at least one trade matching the market
// filter. MarketAll keeps every ticker that traded at all.
func FilterTickers(stats []TickerStats, market MarketFilter) []TickerStats {
	out := make([]TickerStats, 0, len(stats))
	for _, s := range stats {
		switch market {
		case MarketSpot:
			if s.SpotTrades > 0 {
				out = append(out, s)
			}
		case MarketFutures:
			if s.FuturesTrades > 0 {
				out = append(out, s)
			}
		default:
			if s.Trades > 0 {
				out = append(out, s)
			}
		}
	}
	return out
}

// TopTickers returns the best-performing tickers, at most TopGroupCount.
func TopTickers(journal []models.Trade) []TickerStats {
	all := ComputeTickerBreakdown(journal)
	if len(all) > TopGroupCount {
		all = all[:TopGroupCount]
	}
	return all
}
