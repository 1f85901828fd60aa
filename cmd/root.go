package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pgschema/pgdumpsort/internal/logger"
	"github.com/spf13/cobra"
)

var Debug bool

var RootCmd = &cobra.Command{
	Use:   "pgdumpsort",
	Short: "Dependency-aware ordering for a PostgreSQL dump object graph",
	Long: `pgdumpsort takes a JSON snapshot of dump objects and their catalog
dependencies and emits them in a safe, deterministic restore order,
repairing the handful of schema constructs (types and their I/O
functions, views and their rules, and so on) that are inherently
cyclic.

Commands:
  sort    Order a graph snapshot and report any repaired loops
  verify  Spot-check that a graph snapshot's object OIDs still exist

Use "pgdumpsort [command] --help" for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(sortCmd)
	RootCmd.AddCommand(verifyCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger.SetGlobal(slog.New(handler), Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
