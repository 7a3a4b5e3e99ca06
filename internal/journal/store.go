// Package journal records completed analysis runs in a SQLite database.
// The default location is an in-memory database, so the journal lives and
// dies with the process unless a file path is configured.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"lumina/internal/analysis"
)

// MemoryPath selects an in-memory database.
const MemoryPath = ":memory:"

// timeLayout is fixed-width so that created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one journaled analysis.
type Run struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Filename        string    `json:"filename"`
	Language        string    `json:"language"`
	Health          int       `json:"health"`
	Security        int       `json:"security"`
	Maintainability int       `json:"maintainability"`
	IssuesOpen      int       `json:"issuesOpen"`
	Complexity      string    `json:"complexity"`
	CodeBytes       int       `json:"codeBytes"`
}

// Store provides persistence for runs.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the journal database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: path,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	logger.Debug("Journal opened", "path", path)
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			health INTEGER NOT NULL,
			security INTEGER NOT NULL,
			maintainability INTEGER NOT NULL,
			issues_open INTEGER NOT NULL,
			complexity TEXT NOT NULL,
			code_bytes INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record stores a run derived from req and res and returns it.
func (s *Store) Record(ctx context.Context, req analysis.Request, res *analysis.Result) (*Run, error) {
	run := &Run{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Filename:        req.Filename,
		Language:        req.Language,
		Health:          res.Scores.Health,
		Security:        res.Scores.Security,
		Maintainability: res.Scores.Maintainability,
		IssuesOpen:      res.IssuesOpen(),
		Complexity:      res.Complexity.Label,
		CodeBytes:       len(req.Code),
	}

	query := `
		INSERT INTO runs (id, created_at, filename, language, health, security, maintainability, issues_open, complexity, code_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(ctx, query,
		run.ID,
		run.CreatedAt.Format(timeLayout),
		run.Filename,
		run.Language,
		run.Health,
		run.Security,
		run.Maintainability,
		run.IssuesOpen,
		run.Complexity,
		run.CodeBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, created_at, filename, language, health, security, maintainability, issues_open, complexity, code_bytes
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Filename, &r.Language, &r.Health, &r.Security,
			&r.Maintainability, &r.IssuesOpen, &r.Complexity, &r.CodeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Count returns the number of journaled runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}
