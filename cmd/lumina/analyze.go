package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lumina/internal/analysis"
	"lumina/internal/config"
	"lumina/internal/errors"
	"lumina/internal/journal"
	"lumina/internal/slogutil"
)

var (
	analyzeLanguage string
	analyzeFilename string
	analyzeFormat   string
	analyzeRecord   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Analyze a source file",
	Long: `Run the smell detector, complexity estimator and score aggregator over a
file, or over standard input when the argument is "-".

Examples:
  lumina analyze main.py
  cat Service.java | lumina analyze - --language java --filename Service.java
  lumina analyze users.py --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Source language (default: inferred from extension)")
	analyzeCmd.Flags().StringVar(&analyzeFilename, "filename", "", "Filename for the graph root (default: the file's base name)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, yaml, human)")
	analyzeCmd.Flags().BoolVar(&analyzeRecord, "record", false, "Append the run to a file-backed journal")
	rootCmd.AddCommand(analyzeCmd)
}

// languageByExt maps file extensions to language names.
var languageByExt = map[string]string{
	".py":   "python",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".go":   "go",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cs":   "csharp",
	".rb":   "ruby",
	".php":  "php",
	".rs":   "rust",
	".kt":   "kotlin",
	".sql":  "sql",
}

// inferLanguage guesses a language from a filename; unknown yields "text".
func inferLanguage(filename string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return "text"
}

// readSource reads path, or r when path is "-", refusing more than max bytes.
func readSource(path string, r io.Reader, max int) (string, error) {
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open source: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if len(data) > max {
		return "", errors.New(errors.PayloadTooLarge, fmt.Sprintf("Source exceeds %d bytes", max), nil)
	}
	return string(data), nil
}

// buildRequest assembles the analysis request for path from the flags.
func buildRequest(path, code string) analysis.Request {
	filename := analyzeFilename
	if filename == "" && path != "-" {
		filename = filepath.Base(path)
	}
	language := analyzeLanguage
	if language == "" {
		language = inferLanguage(filename)
	}
	return analysis.Request{Language: language, Code: code, Filename: filename}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	code, err := readSource(args[0], cmd.InOrStdin(), cfg.Analysis.MaxCodeBytes)
	if err != nil {
		return err
	}

	req := buildRequest(args[0], code)
	res := analysis.Analyze(req)

	if analyzeRecord {
		if err := recordRun(cmd, cfg, req, res); err != nil {
			return err
		}
	}

	out, err := FormatResponse(res.Response(), OutputFormat(analyzeFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// recordRun appends the run to the configured journal file.
func recordRun(cmd *cobra.Command, cfg *config.Config, req analysis.Request, res *analysis.Result) error {
	path := journalPath(cfg)
	if !cfg.Journal.Enabled || path == journal.MemoryPath {
		return errors.New(errors.JournalUnavailable, "Recording needs journal.enabled and a file journal.path", nil)
	}

	factory := slogutil.NewLoggerFactory(rootDir, cfg, cliLevel())
	defer func() { _ = factory.Close() }()

	store, err := journal.Open(path, factory.Logger("journal"))
	if err != nil {
		return errors.New(errors.JournalUnavailable, "Failed to open journal", err)
	}
	defer func() { _ = store.Close() }()

	_, err = store.Record(cmd.Context(), req, res)
	return err
}
