// Package audit keeps a journal of every xcproj invocation in a SQLite
// database next to the manifest.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/xcproj/internal/sqlutil"
)

// DirName is the per-project state directory.
const DirName = ".xcproj"

// FileName is the journal database inside DirName.
const FileName = "audit.db"

// Outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeReadOnly = "read-only"
	OutcomeDryRun   = "dry-run"
	OutcomeFailed   = "failed"
)

// Entry represents a single journal entry.
type Entry struct {
	Time      time.Time
	Command   string
	Manifest  string // empty for manifest-less commands
	DryRun    bool
	Outcome   string
	ErrorKind string
	Message   string
	Duration  time.Duration
}

// Journal is an open audit database.
type Journal struct {
	db   *sql.DB
	path string
}

// Path returns the journal location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// Open opens or creates the journal for dir.
func Open(ctx context.Context, dir string) (*Journal, error) {
	dbDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	dbPath := filepath.Join(dbDir, FileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit journal: %w", err)
	}

	j := &Journal{db: db, path: dbPath}
	if err := j.initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	ts          TEXT NOT NULL,
	command     TEXT NOT NULL,
	manifest    TEXT NOT NULL DEFAULT '',
	dry_run     INTEGER NOT NULL DEFAULT 0,
	outcome     TEXT NOT NULL,
	error_kind  TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	duration_ns INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_invocations_ts ON invocations(ts);
`

func (j *Journal) initialize(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, "PRAGMA busy_timeout = 2000"); err != nil {
		return fmt.Errorf("failed to configure audit journal: %w", err)
	}
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize audit journal: %w", err)
	}
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends e. A zero Time is set to now.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO invocations (ts, command, manifest, dry_run, outcome, error_kind, message, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano), e.Command, e.Manifest, boolToInt(e.DryRun),
		e.Outcome, e.ErrorKind, e.Message, int64(e.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of 0 or less
// returns every entry. When commands are given only their invocations are
// returned.
func (j *Journal) Recent(ctx context.Context, limit int, commands ...string) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ts, command, manifest, dry_run, outcome, error_kind, message, duration_ns
		 FROM invocations`
	var params []any
	if cond, args := sqlutil.MatchAny("command", commands); cond != "" {
		query += ` WHERE ` + cond
		params = append(params, args...)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	params = append(params, limit)

	rows, err := j.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit journal: %w", err)
	}
	entries, err := sqlutil.ScanRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit entry: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e      Entry
		ts     string
		dryRun int
		nanos  int64
	)
	if err := rows.Scan(&ts, &e.Command, &e.Manifest, &dryRun, &e.Outcome, &e.ErrorKind, &e.Message, &nanos); err != nil {
		return Entry{}, err
	}
	e.Time, _ = time.Parse(time.RFC3339Nano, ts)
	e.DryRun = dryRun != 0
	e.Duration = time.Duration(nanos)
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
