// Package resultstore persists per-N search outcomes in a single embedded
// sqlite database file, so a later run can seed its initial bound from a
// prior best and skip N values already proven optimal.
//
// Schema (applied by Migrate, idempotent):
//
//	results(id, n, max_value, solution_set, computation_time, status, nodes_explored, timestamp)
//	  UNIQUE(n, max_value, solution_set); indexes on n and status.
//	optimal_sets(id, n, max_value, solution_set)
//	  UNIQUE(n, solution_set); index on n.
//	schema_version(version)
//
// Design follows sentra-language-sentra/internal/database/db_manager.go's
// DBManager: sql.Open + Ping at construction, a bounded connection pool, and
// a package-specific mutex serializing writes across worker goroutines (here
// a single *sql.DB with its own pool substitutes for DBManager's named
// multi-connection registry, since this system only ever talks to one file).
package resultstore

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/bsetsearch/bigint"
)

// mattn/go-sqlite3 is the cgo-based alternative driver declared alongside
// modernc.org/sqlite in the example pack this was grounded on. It is not
// imported here: registering both drivers under conflicting cgo requirements
// in one binary buys nothing — modernc's pure-Go driver already satisfies
// every database/sql need this store has.

const schemaVersion = 1

const ddl = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	n                INTEGER NOT NULL,
	max_value        TEXT NOT NULL,
	solution_set     TEXT NOT NULL,
	computation_time REAL NOT NULL,
	status           TEXT NOT NULL,
	nodes_explored   INTEGER NOT NULL,
	timestamp        DATETIME NOT NULL,
	UNIQUE(n, max_value, solution_set)
);
CREATE INDEX IF NOT EXISTS idx_results_n ON results(n);
CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);

CREATE TABLE IF NOT EXISTS optimal_sets (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	n            INTEGER NOT NULL,
	max_value    TEXT NOT NULL,
	solution_set TEXT NOT NULL,
	UNIQUE(n, solution_set)
);
CREATE INDEX IF NOT EXISTS idx_optimal_sets_n ON optimal_sets(n);
`

// Store is a mutex-guarded handle onto the result-store database file.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if absent) the sqlite file at path and applies the
// schema. path may be ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("resultstore: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultstore: ping %s: %w", path, err)
	}

	db.SetMaxOpenConns(1) // sqlite serializes writers anyway; avoid SQLITE_BUSY churn
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies the v1 schema. Idempotent: safe to call on every startup.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("resultstore: migrate: %w", err)
	}

	var count int
	row := s.db.QueryRow(`SELECT COUNT(*) FROM schema_version`)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("resultstore: migrate: read schema_version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.Exec(`INSERT INTO schema_version(version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("resultstore: migrate: seed schema_version: %w", err)
		}
	}

	return nil
}

// GetBestBound returns the smallest max_value on record for n, if any, to
// seed search.Config.InitialBound (spec's speedup lever — see DESIGN.md Open
// Question 3).
func (s *Store) GetBestBound(n int) (bigint.Int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT max_value FROM results
		WHERE n = ? AND status IN ('OPTIMAL', 'FEASIBLE')
		ORDER BY CAST(max_value AS INTEGER) ASC
		LIMIT 1`, n)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return bigint.Int{}, false, nil
		}
		return bigint.Int{}, false, fmt.Errorf("resultstore: get_best_bound(%d): %w", n, err)
	}

	v, err := bigint.SetString(raw)
	if err != nil {
		return bigint.Int{}, false, fmt.Errorf("resultstore: get_best_bound(%d): corrupt max_value %q: %w", n, raw, err)
	}

	return v, true, nil
}

// HasOptimal reports whether n already has a result recorded with status
// OPTIMAL, letting a worker skip re-solving it.
func (s *Store) HasOptimal(n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	row := s.db.QueryRow(`SELECT COUNT(*) FROM results WHERE n = ? AND status = 'OPTIMAL'`, n)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("resultstore: has_optimal(%d): %w", n, err)
	}

	return count > 0, nil
}

// GetOptimalResult returns the previously-recorded OPTIMAL result for n, if
// any, plus every sequence saved under optimal_sets for that n. It is the
// counterpart HasOptimal's skip-if-solved check reads from, so a worker can
// skip the solve entirely instead of merely logging that it could have.
func (s *Store) GetOptimalResult(n int) (SolvedResult, [][]bigint.Int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT max_value, solution_set, computation_time, nodes_explored, timestamp
		FROM results WHERE n = ? AND status = 'OPTIMAL'
		ORDER BY timestamp DESC LIMIT 1`, n)

	var maxRaw, solRaw string
	var r SolvedResult
	r.TargetN = n
	r.Status = "OPTIMAL"
	if err := row.Scan(&maxRaw, &solRaw, &r.ElapsedSeconds, &r.NodesExplored, &r.Timestamp); err != nil {
		if err == sql.ErrNoRows {
			return SolvedResult{}, nil, false, nil
		}
		return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): %w", n, err)
	}

	maxValue, err := bigint.SetString(maxRaw)
	if err != nil {
		return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): corrupt max_value %q: %w", n, maxRaw, err)
	}
	r.MaxValue = maxValue

	solution, err := parseSolutionSet(solRaw)
	if err != nil {
		return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): corrupt solution_set %q: %w", n, solRaw, err)
	}
	r.Solution = solution

	sRows, err := s.db.Query(`SELECT solution_set FROM optimal_sets WHERE n = ? AND max_value = ?`, n, maxRaw)
	if err != nil {
		return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): optima query: %w", n, err)
	}
	defer sRows.Close()

	var optima [][]bigint.Int
	for sRows.Next() {
		var raw string
		if err := sRows.Scan(&raw); err != nil {
			return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): optima scan: %w", n, err)
		}
		seq, err := parseSolutionSet(raw)
		if err != nil {
			return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): corrupt optimal_sets row %q: %w", n, raw, err)
		}
		optima = append(optima, seq)
	}
	if err := sRows.Err(); err != nil {
		return SolvedResult{}, nil, false, fmt.Errorf("resultstore: get_optimal_result(%d): optima rows: %w", n, err)
	}

	return r, optima, true, nil
}

// LastSolvedN returns the largest n on record in results, if any — used to
// default the CLI's -s/--start-n flag to "one past the last solved N" per
// spec §6.
func (s *Store) LastSolvedN() (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n sql.NullInt64
	row := s.db.QueryRow(`SELECT MAX(n) FROM results`)
	if err := row.Scan(&n); err != nil {
		return 0, false, fmt.Errorf("resultstore: last_solved_n: %w", err)
	}
	if !n.Valid {
		return 0, false, nil
	}

	return int(n.Int64), true, nil
}

// SolvedResult is the persisted shape of search.Result, decoupled from the
// search package so resultstore has no import-time dependency on it.
type SolvedResult struct {
	TargetN        int
	MaxValue       bigint.Int
	Solution       []bigint.Int
	Status         string
	NodesExplored  uint64
	ElapsedSeconds float64
	Timestamp      time.Time
}

// SaveResult inserts r, idempotent on (n, max_value, solution_set) per
// spec's UNIQUE constraint.
func (s *Store) SaveResult(r SolvedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO results
			(n, max_value, solution_set, computation_time, status, nodes_explored, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.TargetN, r.MaxValue.String(), formatSolutionSet(r.Solution),
		r.ElapsedSeconds, r.Status, r.NodesExplored, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("resultstore: save_result(n=%d): %w", r.TargetN, err)
	}

	return nil
}

// SaveOptima inserts every sequence in optima for n, idempotent on
// (n, solution_set).
func (s *Store) SaveOptima(n int, maxValue bigint.Int, optima [][]bigint.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("resultstore: save_optima(n=%d): begin: %w", n, err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO optimal_sets (n, max_value, solution_set)
		VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("resultstore: save_optima(n=%d): prepare: %w", n, err)
	}
	defer stmt.Close()

	for _, seq := range optima {
		if _, err := stmt.Exec(n, maxValue.String(), formatSolutionSet(seq)); err != nil {
			tx.Rollback()
			return fmt.Errorf("resultstore: save_optima(n=%d): %w", n, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resultstore: save_optima(n=%d): commit: %w", n, err)
	}

	return nil
}

// ShownResult is one row of Show's output.
type ShownResult struct {
	TargetN        int
	MaxValue       string
	Solution       string
	Status         string
	NodesExplored  uint64
	ElapsedSeconds float64
	Timestamp      time.Time
}

// Show returns every stored result for n, most recent first. n == 0 means
// "every N on record".
func (s *Store) Show(n int) ([]ShownResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	var err error
	if n > 0 {
		rows, err = s.db.Query(`
			SELECT n, max_value, solution_set, status, nodes_explored, computation_time, timestamp
			FROM results WHERE n = ? ORDER BY timestamp DESC`, n)
	} else {
		rows, err = s.db.Query(`
			SELECT n, max_value, solution_set, status, nodes_explored, computation_time, timestamp
			FROM results ORDER BY n ASC, timestamp DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("resultstore: show(%d): %w", n, err)
	}
	defer rows.Close()

	var out []ShownResult
	for rows.Next() {
		var r ShownResult
		if err := rows.Scan(&r.TargetN, &r.MaxValue, &r.Solution, &r.Status, &r.NodesExplored, &r.ElapsedSeconds, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("resultstore: show(%d): scan: %w", n, err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Aggregate is Stats' result: summary counters across every stored result.
type Aggregate struct {
	SolvedCount       int
	MinElapsedSeconds float64
	MaxElapsedSeconds float64
	AvgElapsedSeconds float64
	TotalNodes        uint64
}

// Stats aggregates across the results table (solved count, min/max/avg
// elapsed seconds, total nodes explored) — supplements spec's CLI --stats
// flag, which the core spec leaves unspecified beyond naming it.
func (s *Store) Stats() (Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(MIN(computation_time), 0),
			COALESCE(MAX(computation_time), 0),
			COALESCE(AVG(computation_time), 0),
			COALESCE(SUM(nodes_explored), 0)
		FROM results`)

	var agg Aggregate
	if err := row.Scan(&agg.SolvedCount, &agg.MinElapsedSeconds, &agg.MaxElapsedSeconds, &agg.AvgElapsedSeconds, &agg.TotalNodes); err != nil {
		return Aggregate{}, fmt.Errorf("resultstore: stats: %w", err)
	}

	return agg, nil
}

// formatSolutionSet renders a sequence as spec's textual list form, e.g.
// "[1, 2, 5, 11, 22, 40]".
func formatSolutionSet(seq []bigint.Int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = v.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// parseSolutionSet is formatSolutionSet's inverse, used to reconstruct a
// sequence read back from the database (e.g. for GetOptimalResult's
// skip-if-solved path).
func parseSolutionSet(s string) ([]bigint.Int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]bigint.Int, len(parts))
	for i, p := range parts {
		v, err := bigint.SetString(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
