package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS api_requests (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			ticker     TEXT,
			kind       TEXT,
			days       INTEGER,
			points     INTEGER,
			status     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_ts ON api_requests(timestamp)`,

		`CREATE TABLE IF NOT EXISTS digest_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			trigger_type TEXT,
			tickers   INTEGER,
			sent      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_digest_ts ON digest_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS digest_entries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			ticker         TEXT,
			last_price     REAL,
			predicted      REAL,
			change_percent REAL,
			signal         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_run ON digest_entries(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRequest(evt *RequestEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO api_requests
		(request_id, timestamp, ticker, kind, days, points, status)
		VALUES (?,?,?,?,?,?,?)`,
		evt.RequestID, time.Now().Unix(), evt.Ticker, evt.Kind,
		evt.Days, evt.Points, evt.Status,
	)
	return err
}

// RecordDigest writes the run and its entries in one transaction.
func (r *SQLiteRecorder) RecordDigest(run *DigestRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin digest tx: %w", err)
	}
	defer tx.Rollback()

	sent := 0
	if run.Sent {
		sent = 1
	}
	if _, err := tx.Exec(`INSERT INTO digest_runs
		(run_id, timestamp, trigger_type, tickers, sent)
		VALUES (?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), run.Trigger, len(run.Entries), sent,
	); err != nil {
		return fmt.Errorf("insert digest run: %w", err)
	}

	for _, e := range run.Entries {
		if _, err := tx.Exec(`INSERT INTO digest_entries
			(run_id, ticker, last_price, predicted, change_percent, signal)
			VALUES (?,?,?,?,?,?)`,
			run.RunID, e.Ticker, e.LastPrice, e.Predicted, e.ChangePercent, string(e.Signal),
		); err != nil {
			return fmt.Errorf("insert digest entry %s: %w", e.Ticker, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
