package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumina/internal/errors"
	"lumina/internal/journal"
	"lumina/internal/slogutil"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled analyses",
	Long: `List recent analyses from a file-backed journal, newest first.
An in-memory journal only exists inside a running server; use GET /history there.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, yaml, human)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := journalPath(cfg)
	if !cfg.Journal.Enabled || path == journal.MemoryPath {
		return errors.New(errors.JournalUnavailable, "No file-backed journal configured", nil)
	}

	factory := slogutil.NewLoggerFactory(rootDir, cfg, cliLevel())
	defer func() { _ = factory.Close() }()

	store, err := journal.Open(path, factory.Logger("journal"))
	if err != nil {
		return errors.New(errors.JournalUnavailable, "Failed to open journal", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	runs, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	out, err := FormatResponse(&HistoryOutput{Path: path, Total: total, Runs: runs}, OutputFormat(historyFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
