package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/internal/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Single-asset moving average / RSI strategy backtester",
	Long: `Backtester replays a daily price history through a long-only
moving average / RSI strategy and reports how the portfolio would have done.

It provides tools for:
  - Loading daily candles from a CSV file or Binance klines
  - Running the strategy with all-in buys and full exits
  - Summaries, Org-mode reports and HTML charts of a run
  - Journaling runs to CSV or SQLite and browsing them`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			logger.SetLevel(logLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
