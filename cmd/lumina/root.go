package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumina/internal/chat"
	"lumina/internal/config"
	"lumina/internal/errors"
	"lumina/internal/journal"
	"lumina/internal/slogutil"
	"lumina/internal/version"
)

var (
	// rootDir is the project directory holding .lumina/
	rootDir   string
	verbosity int
	quiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina - heuristic code quality analysis",
	Long: `Lumina scores code snippets for health, security and maintainability using
deterministic substring heuristics, estimates a complexity class, and extracts a
shallow construct graph. It runs as an HTTP service or directly from the CLI.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project directory containing .lumina/")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all logging")
}

// loadConfig loads and validates the project configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootDir)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Invalid configuration", err)
	}
	return cfg, nil
}

// cliLevel maps -v/-q to a level override; nil defers to the config.
func cliLevel() *slog.Level {
	if verbosity == 0 && !quiet {
		return nil
	}
	level := slogutil.LevelFromVerbosity(verbosity, quiet)
	return &level
}

// resolvePath makes p relative to the project's .lumina directory.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, config.DirName, p)
}

// journalPath returns where the journal lives; ":memory:" stays as is.
func journalPath(cfg *config.Config) string {
	if cfg.Journal.Path == "" || cfg.Journal.Path == journal.MemoryPath {
		return journal.MemoryPath
	}
	return resolvePath(cfg.Journal.Path)
}

// newResponder builds the chat responder, honoring a configured rules file.
func newResponder(cfg *config.Config) (*chat.Responder, error) {
	if cfg.Chat.RulesFile == "" {
		return chat.NewResponder(nil, ""), nil
	}
	r, err := chat.LoadRules(resolvePath(cfg.Chat.RulesFile))
	if err != nil {
		return nil, fmt.Errorf("load chat rules: %w", err)
	}
	return r, nil
}
