// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package store keeps the results of simulation runs in a SQLite database:
one row per run with its constants and configuration, the recorded
samples and the stimulation markers.  Sweeps over parameters write all
their runs into the same database.
*/
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/thalcort/record"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned for a run id that is not in the database
var ErrNotFound = errors.New("run not found")

// Run describes one stored simulation run
type Run struct {
	ID       int64
	Name     string
	Created  time.Time
	Seed     uint64
	Res      float64
	Onset    float64
	Duration float64
	Steps    int
	Stride   int
	Config   string  `desc:"run configuration as YAML"`
	Secs     float64 `desc:"wall-clock duration of the run"`
	Markers  []float64
}

// Store is a SQLite database of runs
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the database at path.  The path
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer, and keeps an in-memory database alive

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the run with the samples of the recorder (nil for none)
// and sets run.ID
func (s *Store) SaveRun(ctx context.Context, run *Run, rc *record.Recorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.Created.IsZero() {
		run.Created = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (name, created_at, seed, res, onset, duration, steps, stride, config, secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Name, run.Created.UTC().Format(time.RFC3339Nano), int64(run.Seed), run.Res, run.Onset,
		run.Duration, run.Steps, run.Stride, run.Config, run.Secs)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	if rc != nil && rc.Row > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO samples (run_id, row, time, vp, vt, vr, ca, act_h)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare samples: %w", err)
		}
		defer stmt.Close()
		cols := make([][]float64, len(record.Columns))
		for i, cn := range record.Columns {
			cols[i], _ = rc.Values(cn)
		}
		for r := 0; r < rc.Row; r++ {
			if _, err := stmt.ExecContext(ctx, id, r, cols[0][r], cols[1][r], cols[2][r], cols[3][r], cols[4][r], cols[5][r]); err != nil {
				return fmt.Errorf("failed to insert sample %d: %w", r, err)
			}
		}
	}

	for i, mt := range run.Markers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO markers (run_id, idx, time) VALUES (?, ?, ?)`, id, i, mt); err != nil {
			return fmt.Errorf("failed to insert marker %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	run.ID = id
	return nil
}

// Runs returns all stored runs in insertion order, without markers
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, seed, res, onset, duration, steps, stride, config, secs
		FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var created string
	var seed int64
	var cfg sql.NullString
	if err := sc.Scan(&run.ID, &run.Name, &created, &seed, &run.Res, &run.Onset, &run.Duration,
		&run.Steps, &run.Stride, &cfg, &run.Secs); err != nil {
		return run, err
	}
	run.Seed = uint64(seed)
	run.Config = cfg.String
	run.Created, _ = time.Parse(time.RFC3339Nano, created)
	return run, nil
}

// Run returns the stored run with the given id, including its markers
func (s *Store) Run(ctx context.Context, id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, seed, res, onset, duration, steps, stride, config, secs
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT time FROM markers WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mt float64
		if err := rows.Scan(&mt); err != nil {
			return nil, err
		}
		run.Markers = append(run.Markers, mt)
	}
	return &run, rows.Err()
}

// Samples returns the samples of a run as a table with record.Columns
func (s *Store) Samples(ctx context.Context, id int64) (*etable.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples WHERE run_id = ?`, id).Scan(&n); err != nil {
		return nil, fmt.Errorf("failed to count samples: %w", err)
	}
	dt := &etable.Table{}
	sch := etable.Schema{}
	for _, cn := range record.Columns {
		sch = append(sch, etable.Column{Name: cn, Type: etensor.FLOAT64})
	}
	dt.SetFromSchema(sch, n)
	dt.SetMetaData("name", fmt.Sprintf("Run%d", id))

	rows, err := s.db.QueryContext(ctx, `
		SELECT row, time, vp, vt, vr, ca, act_h FROM samples WHERE run_id = ? ORDER BY row`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()
	vals := make([][]float64, len(record.Columns))
	for i := range vals {
		vals[i] = dt.Cols[i].(*etensor.Float64).Values
	}
	r := 0
	for rows.Next() {
		var row int
		var v [6]float64
		if err := rows.Scan(&row, &v[0], &v[1], &v[2], &v[3], &v[4], &v[5]); err != nil {
			return nil, err
		}
		if r >= n {
			break
		}
		for i := range v {
			vals[i][r] = v[i]
		}
		r++
	}
	return dt, rows.Err()
}

// DeleteRun removes a run with its samples and markers
func (s *Store) DeleteRun(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	return nil
}
