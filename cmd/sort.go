package cmd

import (
	"fmt"
	"os"

	"github.com/pgschema/pgdumpsort/internal/catalog"
	"github.com/pgschema/pgdumpsort/internal/dumpsort"
	"github.com/pgschema/pgdumpsort/internal/loader"
	"github.com/spf13/cobra"
)

var sortInputPath string

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Order a graph snapshot and report any repaired loops",
	RunE:  runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortInputPath, "in", "", "Path to a JSON graph snapshot (required)")
	sortCmd.MarkFlagRequired("in")
}

func runSort(cmd *cobra.Command, args []string) error {
	f, err := os.Open(sortInputPath)
	if err != nil {
		return fmt.Errorf("opening graph snapshot: %w", err)
	}
	defer f.Close()

	objs, reg, preBoundary, postBoundary, err := loader.Load(f)
	if err != nil {
		return fmt.Errorf("loading graph snapshot: %w", err)
	}

	sorted, warnings, err := dumpsort.SortDependencyAware(objs, reg, preBoundary, postBoundary)
	if err != nil {
		return fmt.Errorf("sorting dump objects: %w", err)
	}

	for _, o := range sorted {
		fmt.Printf("%d\t%s\n", o.DumpID, catalog.Describe(o))
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	return nil
}
