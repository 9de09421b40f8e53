package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tradejournal/internal/analytics"
	"tradejournal/internal/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ---- Journal CRUD ----

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to list trades", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load trades")
		return
	}
	s.writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleSaveTrade(w http.ResponseWriter, r *http.Request) {
	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid trade payload")
		return
	}

	// PnL is a pure function of prices, direction and leverage; recomputing
	// at the boundary keeps hand-edited records consistent.
	if !trade.IsOpen() {
		trade.ComputePnl()
	}

	if err := s.store.SaveTrade(r.Context(), &trade); err != nil {
		s.logger.Error("Failed to save trade", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save trade")
		return
	}

	if !trade.IsOpen() && s.notifier.Enabled() {
		saved := trade
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			s.notifier.SendTradeClosed(ctx, &saved)
		}()
	}

	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}
	if err := s.store.DeleteTrade(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete trade", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete trade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Wallet CRUD ----

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.Transactions(r.Context())
	if err != nil {
		s.logger.Error("Failed to list transactions", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	s.writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid transaction payload")
		return
	}
	if tx.Type != models.TransactionDeposit && tx.Type != models.TransactionWithdrawal {
		s.writeError(w, http.StatusBadRequest, "transaction type must be deposit or withdrawal")
		return
	}
	if tx.Amount <= 0 {
		s.writeError(w, http.StatusBadRequest, "transaction amount must be positive")
		return
	}
	if err := s.store.SaveTransaction(r.Context(), &tx); err != nil {
		s.logger.Error("Failed to save transaction", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}
	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete transaction", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Vision CRUD ----

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.Goals(r.Context())
	if err != nil {
		s.logger.Error("Failed to list goals", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}
	s.writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleSaveGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid goal payload")
		return
	}
	if err := s.store.SaveGoal(r.Context(), &goal); err != nil {
		s.logger.Error("Failed to save goal", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}
	s.writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete goal", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Playbook CRUD ----

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := s.store.Strategies(r.Context())
	if err != nil {
		s.logger.Error("Failed to list strategies", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load strategies")
		return
	}
	s.writeJSON(w, http.StatusOK, strategies)
}

func (s *Server) handleSaveStrategy(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if err := json.NewDecoder(r.Body).Decode(&strategy); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid strategy payload")
		return
	}
	if strings.TrimSpace(strategy.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "strategy name is required")
		return
	}
	if err := s.store.SaveStrategy(r.Context(), &strategy); err != nil {
		s.logger.Error("Failed to save strategy", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save strategy")
		return
	}
	s.writeJSON(w, http.StatusOK, strategy)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid strategy id")
		return
	}
	if err := s.store.DeleteStrategy(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete strategy", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete strategy")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Analytics ----

// summaryResponse shadows ProfitFactor with a nullable field: the engine
// reports +Inf for a loss-free journal, which JSON cannot carry.
type summaryResponse struct {
	analytics.Summary
	ProfitFactor *float64 `json:"profitFactor"`
}

func finiteOrNil(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func (s *Server) journalAndWallet(r *http.Request) ([]models.Trade, []models.Transaction, error) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.store.Transactions(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return trades, txs, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	trades, txs, err := s.journalAndWallet(r)
	if err != nil {
		s.logger.Error("Failed to load data for summary", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	summary := analytics.ComputeSummary(trades, txs)
	s.writeJSON(w, http.StatusOK, summaryResponse{
		Summary:      summary,
		ProfitFactor: finiteOrNil(summary.ProfitFactor),
	})
}

func (s *Server) handleDuration(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for duration", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute duration")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeDuration(trades))
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for streaks", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute streaks")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeStreaks(trades))
}

func (s *Server) handleSetups(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for setups", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute setup breakdown")
		return
	}
	if r.URL.Query().Get("top") == "true" {
		s.writeJSON(w, http.StatusOK, analytics.TopSetups(trades))
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeSetupBreakdown(trades))
}

func (s *Server) handleLeverage(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for leverage", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute leverage breakdown")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeLeverageBreakdown(trades))
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for tickers", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute ticker breakdown")
		return
	}
	stats := analytics.ComputeTickerBreakdown(trades)

	market := analytics.MarketFilter(r.URL.Query().Get("market"))
	switch market {
	case "", analytics.MarketAll:
		market = analytics.MarketAll
	case analytics.MarketSpot, analytics.MarketFutures:
	default:
		s.writeError(w, http.StatusBadRequest, "market must be All, Spot or Futures")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.FilterTickers(stats, market))
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["date"]
	if _, err := time.Parse(models.DateLayout, day); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for calendar", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute calendar day")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeCalendarDay(trades, day))
}

func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		s.writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for calendar", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute calendar month")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeMonthGrid(trades, year, time.Month(month)))
}

func (s *Server) handleCalendarWeek(w http.ResponseWriter, r *http.Request) {
	ref := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		ref = parsed
	}
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for calendar", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute calendar week")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeWeekGrid(trades, ref))
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	trades, txs, err := s.journalAndWallet(r)
	if err != nil {
		s.logger.Error("Failed to load data for equity curve", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute equity curve")
		return
	}
	balance := analytics.ComputeWalletTotals(txs).Balance
	s.writeJSON(w, http.StatusOK, analytics.ComputeEquityCurve(trades, balance))
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.Trades(r.Context())
	if err != nil {
		s.logger.Error("Failed to load trades for risk metrics", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute risk metrics")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.ComputeRiskMetrics(trades))
}

// ---- Export / backup / market data ----

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := s.store.ExportTrades(r.Context(), w); err != nil {
		s.logger.Error("Failed to export trades", zap.Error(err))
	}
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.WriteBackup(r.Context(), s.cfg.Backup.Dir)
	if err != nil {
		s.logger.Error("Failed to write backup", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to write backup")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleMarketPrices(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, "ids query parameter is required")
		return
	}
	prices, err := s.market.GetSimplePrices(r.Context(), strings.Split(raw, ","))
	if err != nil {
		s.logger.Error("Failed to fetch market prices", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "failed to fetch market prices")
		return
	}
	s.writeJSON(w, http.StatusOK, prices)
}
