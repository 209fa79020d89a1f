// Package main implements the revisions CLI with demo and stress drivers.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryohji/concurrent-revisions/internal/libs/obs"
	"github.com/ryohji/concurrent-revisions/internal/scenario"
	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	obs.InitLogger(level)

	root := &cobra.Command{
		Use:           "revisions",
		Short:         "Fork/join demos for the concurrent revisions runtime",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(demoCmd(), stressCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run one scenario and print the resulting cell values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := revisions.NewRoot()
			defer func() { _ = root.Close() }()
			ctx := revisions.WithRevision(cmd.Context(), root)

			result, err := scenario.Run(ctx, name)
			if err != nil {
				return err
			}

			fmt.Printf("scenario %s\n", result.Name)
			cells := make([]string, 0, len(result.Cells))
			for cell := range result.Cells {
				cells = append(cells, cell)
			}
			sort.Strings(cells)
			for _, cell := range cells {
				fmt.Printf("  %s = %d\n", cell, result.Cells[cell])
			}
			fmt.Printf("  forks=%d joins=%d merges=%d collapses=%d erased=%d\n",
				result.Stats.Forks, result.Stats.Joins, result.Stats.MergesApplied,
				result.Stats.Collapses, result.Stats.EntriesErased)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "scenario", "mutual",
		"scenario to run ("+strings.Join(scenario.Names(), ", ")+")")
	return cmd
}

func stressCmd() *cobra.Command {
	var workers, iters int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run every scenario repeatedly on concurrent workers and check for leaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := scenario.Stress(cmd.Context(), workers, iters)
			if err != nil {
				return err
			}

			fmt.Printf("workers=%d iterations=%d\n", workers, iters)
			fmt.Printf("  forks=%d joins=%d merges=%d collapses=%d\n",
				stats.Forks, stats.Joins, stats.MergesApplied, stats.Collapses)
			fmt.Printf("  segments created=%d freed=%d live=%d\n",
				stats.SegmentsCreated, stats.SegmentsFreed, stats.LiveSegments())
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "concurrent worker tasks")
	cmd.Flags().IntVar(&iters, "iters", 100, "iterations per worker")
	return cmd
}
