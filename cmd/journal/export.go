package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, st, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", exportOut, err)
		}
		defer f.Close()

		if err := st.ExportTrades(context.Background(), f); err != nil {
			return err
		}
		log.Info("Export finished", zap.String("file", exportOut))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "trades.csv", "output file path")
}
