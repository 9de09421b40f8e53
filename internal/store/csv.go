package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tradejournal/internal/models"

	"go.uber.org/zap"
)

// tradeCSVHeader is the column layout for journal exports. Imports accept
// the same layout and skip rows that fail to parse.
var tradeCSVHeader = []string{
	"id", "date", "time", "exit_date", "exit_time", "ticker", "objective",
	"setup", "type", "position", "leverage", "entry_price", "exit_price",
	"fee", "pnl_amount", "pnl_percent", "margin_cost", "reason_in", "reason_out",
}

// ExportTrades writes the full journal as CSV.
func (s *Store) ExportTrades(ctx context.Context, w io.Writer) error {
	trades, err := s.Trades(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tradeCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range trades {
		t := &trades[i]
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date, t.Time, t.ExitDate, t.ExitTime,
			t.Ticker, t.Objective, t.Setup, t.Type, t.Position,
			strconv.Itoa(t.Leverage),
			formatFloat(t.EntryPrice), formatFloat(t.ExitPrice),
			formatFloat(t.Fee), formatFloat(t.PnlAmount),
			formatFloat(t.PnlPercent), formatFloat(t.MarginCost),
			t.ReasonIn, t.ReasonOut,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportTrades reads trades from CSV and saves them. Malformed rows are
// skipped and counted rather than aborting the whole import. Returns the
// number of imported and skipped rows.
func (s *Store) ImportTrades(ctx context.Context, r io.Reader) (imported, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) != len(tradeCSVHeader) || header[0] != "id" {
		return 0, 0, fmt.Errorf("unexpected csv header: %v", header)
	}

	for {
		row, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			skipped++
			continue
		}

		trade, parseErr := parseTradeRow(row)
		if parseErr != nil {
			s.log.Warn("Skipping malformed csv row", zap.Error(parseErr))
			skipped++
			continue
		}
		if saveErr := s.SaveTrade(ctx, trade); saveErr != nil {
			return imported, skipped, saveErr
		}
		imported++
	}
	return imported, skipped, nil
}

func parseTradeRow(row []string) (*models.Trade, error) {
	if len(row) != len(tradeCSVHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(tradeCSVHeader), len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", row[0], err)
	}
	leverage, err := strconv.Atoi(row[10])
	if err != nil {
		return nil, fmt.Errorf("bad leverage %q: %w", row[10], err)
	}

	floats := make([]float64, 6)
	for i, idx := range []int{11, 12, 13, 14, 15, 16} {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("bad %s %q: %w", tradeCSVHeader[idx], row[idx], err)
		}
		floats[i] = v
	}

	return &models.Trade{
		ID:         id,
		Date:       row[1],
		Time:       row[2],
		ExitDate:   row[3],
		ExitTime:   row[4],
		Ticker:     row[5],
		Objective:  row[6],
		Setup:      row[7],
		Type:       row[8],
		Position:   row[9],
		Leverage:   leverage,
		EntryPrice: floats[0],
		ExitPrice:  floats[1],
		Fee:        floats[2],
		PnlAmount:  floats[3],
		PnlPercent: floats[4],
		MarginCost: floats[5],
		ReasonIn:   row[17],
		ReasonOut:  row[18],
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
