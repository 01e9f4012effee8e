package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled backtest runs",
	Long: `Query runs and trades recorded in a SQLite journal.

Subcommands:
  runs   - List recorded runs, newest first
  trades - Print the trades of one run as Org-mode entries

Examples:
  backtester journal runs
  backtester journal trades 01HV5ZB6J4D7M8N9P0QRSTUVWX`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <run-id>",
	Short: "Print the trades of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./backtester.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSYMBOL\tSTRATEGY\tPERIOD\tTRADES\tFINAL VALUE\tRETURN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s..%s\t%d\t%.2f\t%.2f%%\n",
			r.RunID, r.Symbol, r.Strategy,
			r.Start.Format(market.DateLayout), r.End.Format(market.DateLayout),
			r.Trades, r.FinalValue, r.ReturnPct)
	}
	return tw.Flush()
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := args[0]
	if _, err := j.GetRun(cmd.Context(), runID); err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	recs, err := j.ListTradesByRunID(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}
