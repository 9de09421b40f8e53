// Package api exposes the journal's collections and analytics over HTTP for
// the web and desktop frontends.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradejournal/internal/config"
	"tradejournal/internal/marketdata"
	"tradejournal/internal/notify"
	"tradejournal/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Server is the HTTP API server.
type Server struct {
	logger     *zap.Logger
	cfg        *config.Config
	store      *store.Store
	market     marketdata.ClientInterface
	notifier   *notify.Sender
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates the API server and wires up its routes.
func NewServer(
	logger *zap.Logger,
	cfg *config.Config,
	st *store.Store,
	market marketdata.ClientInterface,
	notifier *notify.Sender,
) *Server {
	s := &Server{
		logger:   logger,
		cfg:      cfg,
		store:    st,
		market:   market,
		notifier: notifier,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.withRequestLog)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Journal CRUD
	api.HandleFunc("/journal", s.handleListTrades).Methods("GET")
	api.HandleFunc("/journal", s.handleSaveTrade).Methods("POST")
	api.HandleFunc("/journal/{id}", s.handleDeleteTrade).Methods("DELETE")

	// Wallet CRUD
	api.HandleFunc("/wallet", s.handleListTransactions).Methods("GET")
	api.HandleFunc("/wallet", s.handleSaveTransaction).Methods("POST")
	api.HandleFunc("/wallet/{id}", s.handleDeleteTransaction).Methods("DELETE")

	// Vision CRUD
	api.HandleFunc("/vision", s.handleListGoals).Methods("GET")
	api.HandleFunc("/vision", s.handleSaveGoal).Methods("POST")
	api.HandleFunc("/vision/{id}", s.handleDeleteGoal).Methods("DELETE")

	// Playbook CRUD
	api.HandleFunc("/playbook", s.handleListStrategies).Methods("GET")
	api.HandleFunc("/playbook", s.handleSaveStrategy).Methods("POST")
	api.HandleFunc("/playbook/{id}", s.handleDeleteStrategy).Methods("DELETE")

	// Analytics (read-side projections over the journal)
	api.HandleFunc("/analytics/summary", s.handleSummary).Methods("GET")
	api.HandleFunc("/analytics/duration", s.handleDuration).Methods("GET")
	api.HandleFunc("/analytics/streaks", s.handleStreaks).Methods("GET")
	api.HandleFunc("/analytics/setups", s.handleSetups).Methods("GET")
	api.HandleFunc("/analytics/leverage", s.handleLeverage).Methods("GET")
	api.HandleFunc("/analytics/tickers", s.handleTickers).Methods("GET")
	api.HandleFunc("/analytics/calendar/month/{year}/{month}", s.handleCalendarMonth).Methods("GET")
	api.HandleFunc("/analytics/calendar/week", s.handleCalendarWeek).Methods("GET")
	api.HandleFunc("/analytics/calendar/{date}", s.handleCalendarDay).Methods("GET")
	api.HandleFunc("/analytics/equity", s.handleEquity).Methods("GET")
	api.HandleFunc("/analytics/risk", s.handleRisk).Methods("GET")

	// Export / backup / market data
	api.HandleFunc("/export/trades.csv", s.handleExportCSV).Methods("GET")
	api.HandleFunc("/backup", s.handleBackup).Methods("POST")
	api.HandleFunc("/market/prices", s.handleMarketPrices).Methods("GET")
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)

	handler := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("Starting API server", zap.String("address", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
