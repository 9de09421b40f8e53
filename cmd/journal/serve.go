package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradejournal/internal/api"
	"tradejournal/internal/marketdata"
	"tradejournal/internal/notify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the journal API server",
	Long:  `Start the HTTP API server consumed by the web and desktop frontends.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, st, err := bootstrap()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		log.Info("Configuration loaded, database migrated")

		market := marketdata.NewClient(&cfg.MarketData, log)
		notifier := notify.NewSender(&cfg.Notify, log)
		if notifier.Enabled() {
			log.Info("Trade-closed webhook notifications enabled")
		}

		server := api.NewServer(log, cfg, st, market, notifier)

		// Graceful shutdown on SIGINT/SIGTERM.
		go func() {
			sigchan := make(chan os.Signal, 1)
			signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
			<-sigchan
			log.Info("Shutdown signal received, gracefully shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Shutdown failed", zap.Error(err))
			}
		}()

		if err := server.Start(); err != nil {
			log.Fatal("API server failed", zap.Error(err))
		}
		log.Info("Server stopped.")
	},
}
