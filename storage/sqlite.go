// Package storage keeps a log of finished games in SQLite.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
)

type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID       int64
	PlayedAt time.Time
	Width    int
	Height   int
	Mines    int
	Mode     string
	Seed     int64
	// "win" or "loss"
	Outcome  string
	Duration time.Duration
}

// Open creates or opens the results database at path, creating parent
// directories as needed. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(errs.Resource, err, "storage: cannot create directory %s", dir)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.Resource, err, "storage: cannot open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.Resource, err, "storage: cannot connect to database")
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.Resource, err, "storage: migration failed")
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			played_at INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_results_played_at ON results(played_at DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult inserts a result and returns its ID. A zero PlayedAt is set to
// the current time.
func (s *Store) RecordResult(result Result) (int64, error) {
	if result.PlayedAt.IsZero() {
		result.PlayedAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO results (played_at, width, height, mines, mode, seed, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.PlayedAt.UTC().UnixMilli(),
		result.Width,
		result.Height,
		result.Mines,
		result.Mode,
		result.Seed,
		result.Outcome,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, errs.Wrap(errs.Resource, err, "storage: cannot record result")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Wrap(errs.Resource, err, "storage: cannot get inserted ID")
	}
	return id, nil
}

// Results returns the latest results, newest first. A limit of zero or less
// returns at most 10.
func (s *Store) Results(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, played_at, width, height, mines, mode, seed, outcome, duration_ms
		 FROM results
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errs.Wrap(errs.Resource, err, "storage: cannot query results")
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var playedAt, durationMs int64
		if err := rows.Scan(&r.ID, &playedAt, &r.Width, &r.Height, &r.Mines, &r.Mode, &r.Seed, &r.Outcome, &durationMs); err != nil {
			return nil, errs.Wrap(errs.Resource, err, "storage: cannot scan row")
		}
		r.PlayedAt = time.UnixMilli(playedAt).UTC()
		r.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Resource, err, "storage: row iteration error")
	}

	return results, nil
}

// Stats counts wins and losses per mode.
type Stats struct {
	Mode   string
	Wins   int
	Losses int
}

func (s *Store) Stats() ([]Stats, error) {
	rows, err := s.db.Query(
		`SELECT mode,
		        SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END)
		 FROM results
		 GROUP BY mode
		 ORDER BY mode`,
	)
	if err != nil {
		return nil, errs.Wrap(errs.Resource, err, "storage: cannot query stats")
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.Mode, &st.Wins, &st.Losses); err != nil {
			return nil, errs.Wrap(errs.Resource, err, "storage: cannot scan row")
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Resource, err, "storage: row iteration error")
	}
	return stats, nil
}
