package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/internal/server"
	"github.com/rustyeddy/backtester/journal"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve journaled runs over HTTP",
	Long: `Start a read-only JSON API over a SQLite journal.

Routes:
  GET /api/runs
  GET /api/runs/:id
  GET /api/runs/:id/trades
  GET /api/runs/:id/equity

Example:
  backtester serve --db runs.sqlite --addr :9991`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr   string
	serveDBPath string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":9991", "listen address")
	serveCmd.Flags().StringVarP(&serveDBPath, "db", "d", "./backtester.sqlite", "path to SQLite journal DB")
}

func runServe(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(serveDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	srv, err := server.New(server.Config{Addr: serveAddr, Store: j})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return srv.Start(ctx)
}
