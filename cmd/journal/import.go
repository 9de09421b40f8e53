package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from a CSV export",
	Long: `Import trades from a CSV file in the journal's export layout.
Malformed rows are skipped and counted; rows with an existing id overwrite
the stored record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, st, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[0], err)
		}
		defer f.Close()

		imported, skipped, err := st.ImportTrades(context.Background(), f)
		if err != nil {
			return err
		}

		log.Info("Import finished",
			zap.String("file", args[0]),
			zap.Int("imported", imported),
			zap.Int("skipped", skipped))
		return nil
	},
}
