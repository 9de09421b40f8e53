package main

import (
	"context"
	"fmt"
	"math"

	"tradejournal/internal/analytics"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a performance report to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, st, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := context.Background()
		data, err := st.Load(ctx)
		if err != nil {
			return err
		}

		summary := analytics.ComputeSummary(data.Journal, data.Wallet)
		duration := analytics.ComputeDuration(data.Journal)
		streaks := analytics.ComputeStreaks(data.Journal)
		risk := analytics.ComputeRiskMetrics(data.Journal)
		wallet := analytics.ComputeWalletTotals(data.Wallet)

		fmt.Println("=== Performance ===")
		fmt.Printf("Trades:         %d (%d W / %d L / %d BE)\n",
			summary.TotalTrades, summary.Wins, summary.Losses, summary.Ties)
		fmt.Printf("Win rate:       %d%%\n", summary.WinRate)
		fmt.Printf("Total PnL:      %+.2f\n", summary.TotalPnl)
		fmt.Printf("Avg win/loss:   %+.2f / %+.2f\n", summary.AvgWin, summary.AvgLoss)
		fmt.Printf("Risk/reward:    %.2f\n", summary.RiskReward)
		fmt.Printf("Profit factor:  %s\n", formatProfitFactor(summary.ProfitFactor))
		fmt.Printf("ROI:            %.2f%%\n", summary.ROI)

		fmt.Println("\n=== Behaviour ===")
		fmt.Printf("Avg duration:   %.1fh over %d trades (%s)\n",
			duration.AvgDurationHours, duration.Samples, duration.TraderType)
		fmt.Printf("Streak:         current %+d, best win %d, worst loss %d\n",
			streaks.Current, streaks.LongestWin, streaks.LongestLoss)

		fmt.Println("\n=== Risk ===")
		fmt.Printf("Avg risk/trade: %.2f\n", risk.AvgRiskPerTrade)
		if risk.RiskConsistencyAvailable {
			fmt.Printf("Sizing score:   %.0f/100\n", risk.RiskConsistencyScore)
		} else {
			fmt.Println("Sizing score:   N/A")
		}
		fmt.Printf("Reward/risk:    %.2f\n", risk.RewardToRisk)

		fmt.Println("\n=== Wallet ===")
		fmt.Printf("Deposits:       %.2f\n", wallet.Deposits)
		fmt.Printf("Withdrawals:    %.2f\n", wallet.Withdrawals)
		fmt.Printf("Balance:        %.2f (%.2f with PnL)\n",
			wallet.Balance, wallet.Balance+summary.TotalPnl)
		return nil
	},
}

func formatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "Inf (no losing trades)"
	}
	return fmt.Sprintf("%.2f", pf)
}
