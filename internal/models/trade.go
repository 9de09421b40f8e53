package models

import (
	"strings"
	"time"
)

const (
	TypeSpot    = "Spot"
	TypeFutures = "Futures"

	PositionLong  = "Long"
	PositionShort = "Short"

	ObjectiveScalping = "Scalping"
	ObjectiveDayTrade = "Day Trade"
	ObjectiveSwing    = "Swing Trade"
	ObjectivePosition = "Position"

	// DefaultSetup is the bucket used when a trade has no setup assigned.
	DefaultSetup = "Unknown"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Trade represents a single logged position in the journal.
// Date/time fields are stored as strings in DateLayout/TimeLayout form,
// matching what the frontend submits.
type Trade struct {
	ID         int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date       string  `gorm:"not null;index" json:"date"`
	Time       string  `json:"time"`
	ExitDate   string  `gorm:"index" json:"exitDate"`
	ExitTime   string  `json:"exitTime"`
	Ticker     string  `gorm:"not null;index" json:"ticker"`
	Objective  string  `json:"objective"`
	Setup      string  `json:"setup"`
	Type       string  `gorm:"not null" json:"type"`
	Position   string  `gorm:"not null" json:"position"`
	Leverage   int     `json:"leverage"`
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Fee        float64 `json:"fee"`
	PnlAmount  float64 `json:"pnlAmount"`
	PnlPercent float64 `json:"pnlPercent"`
	MarginCost float64 `json:"marginCost"`
	ChartImg   string  `gorm:"type:text" json:"chartImg"`
	PnlImg     string  `gorm:"type:text" json:"pnlImg"`
	ReasonIn   string  `gorm:"type:text" json:"reasonIn"`
	ReasonOut  string  `gorm:"type:text" json:"reasonOut"`
}

// NetPnl is the realized profit or loss after fees. Every aggregate in the
// analytics package classifies and sums trades by this value, never by the
// gross PnlAmount.
func (t *Trade) NetPnl() float64 {
	return t.PnlAmount - t.Fee
}

// IsOpen reports whether the position is still active.
func (t *Trade) IsOpen() bool {
	return t.ExitPrice == 0
}

// directionMultiplier is +1 for longs and -1 for shorts.
func (t *Trade) directionMultiplier() float64 {
	if t.Position == PositionShort {
		return -1
	}
	return 1
}

// effectiveLeverage is the leverage applied to PnL math. Leverage only has
// meaning for futures positions; spot trades always run at 1x.
func (t *Trade) effectiveLeverage() float64 {
	if t.Type != TypeFutures || t.Leverage < 1 {
		return 1
	}
	return float64(t.Leverage)
}

// ComputePnl derives PnlAmount and PnlPercent from the entry/exit prices,
// position direction and leverage. It leaves both fields untouched for open
// trades.
func (t *Trade) ComputePnl() {
	if t.IsOpen() || t.EntryPrice <= 0 {
		return
	}
	dir := t.directionMultiplier()
	lev := t.effectiveLeverage()
	t.PnlAmount = (t.ExitPrice - t.EntryPrice) * dir * lev
	t.PnlPercent = (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100 * dir * lev
}

// Normalize cleans up a record before persistence: tickers are stored
// uppercase, leverage defaults to 1 and negative money fields are clamped.
func (t *Trade) Normalize() {
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
	t.Setup = strings.TrimSpace(t.Setup)
	if t.Leverage < 1 {
		t.Leverage = 1
	}
	if t.Fee < 0 {
		t.Fee = 0
	}
	if t.MarginCost < 0 {
		t.MarginCost = 0
	}
}

// SetupKey is the group-by key for setup breakdowns.
func (t *Trade) SetupKey() string {
	if strings.TrimSpace(t.Setup) == "" {
		return DefaultSetup
	}
	return t.Setup
}

// ExitDay returns the calendar day the trade's realized PnL belongs to:
// the exit date when present, otherwise the entry date.
func (t *Trade) ExitDay() string {
	if t.ExitDate != "" {
		return t.ExitDate
	}
	return t.Date
}

func combineInstant(date, clock string) (time.Time, error) {
	if clock == "" {
		return time.Parse(DateLayout, date)
	}
	return time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
}

// EntryInstant parses the entry date and time into a single instant.
func (t *Trade) EntryInstant() (time.Time, error) {
	return combineInstant(t.Date, t.Time)
}

// ExitInstant parses the exit date and time, falling back to the entry
// date/time for fields that were never filled in.
func (t *Trade) ExitInstant() (time.Time, error) {
	date := t.ExitDate
	if date == "" {
		date = t.Date
	}
	clock := t.ExitTime
	if clock == "" {
		clock = t.Time
	}
	return combineInstant(date, clock)
}

// HoldingDuration returns how long the position was held. The second return
// is false when either timestamp is malformed or the span is not positive,
// in which case the trade must be excluded from duration averages.
func (t *Trade) HoldingDuration() (time.Duration, bool) {
	entry, err := t.EntryInstant()
	if err != nil {
		return 0, false
	}
	exit, err := t.ExitInstant()
	if err != nil {
		return 0, false
	}
	d := exit.Sub(entry)
	if d <= 0 {
		return 0, false
	}
	return d, true
}
