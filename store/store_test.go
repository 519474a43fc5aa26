// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/emer/etable/etensor"
	"github.com/emer/thalcort/record"
	"github.com/emer/thalcort/tc"
)

type constObs float64

func (c constObs) Vp() float64   { return float64(c) }
func (c constObs) Vt() float64   { return float64(c) + 1 }
func (c constObs) Vr() float64   { return float64(c) + 2 }
func (c constObs) Ca() float64   { return float64(c) + 3 }
func (c constObs) ActH() float64 { return float64(c) + 4 }

func testRecorder(t *testing.T) (*tc.Config, *record.Recorder) {
	cfg := &tc.Config{}
	cfg.Defaults()
	cfg.Onset = 0.01
	cfg.Duration = 0.05
	cfg.Update()
	rc, err := record.New(cfg, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < cfg.Steps(); s++ {
		rc.Sample(s, constObs(s))
	}
	return cfg, rc
}

func openTest(t *testing.T) *Store {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	cfg, rc := testRecorder(t)
	run := &Run{Name: "base", Seed: 42, Res: cfg.Res, Onset: cfg.Onset, Duration: cfg.Duration,
		Steps: cfg.Steps(), Stride: rc.Stride, Config: "seed: 42\n", Markers: []float64{0.5, 3.5}}
	if err := s.SaveRun(ctx, run, rc); err != nil {
		t.Fatal(err)
	}
	if run.ID == 0 {
		t.Fatalf("run id not set\n")
	}

	got, err := s.Run(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "base" || got.Seed != 42 || got.Steps != 600 || got.Config != "seed: 42\n" {
		t.Errorf("run: %+v\n", got)
	}
	if len(got.Markers) != 2 || got.Markers[1] != 3.5 {
		t.Errorf("markers: %v\n", got.Markers)
	}

	dt, err := s.Samples(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dt.Rows != rc.Row {
		t.Fatalf("rows: %d, want %d\n", dt.Rows, rc.Row)
	}
	for i, cn := range record.Columns {
		want, _ := rc.Values(cn)
		vals := dt.Cols[i].(*etensor.Float64).Values
		for r := range want {
			if vals[r] != want[r] {
				t.Errorf("%s row %d: %v, want %v\n", cn, r, vals[r], want[r])
			}
		}
	}
}

func TestRunsAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	for i, nm := range []string{"a", "b", "c"} {
		run := &Run{Name: nm, Seed: uint64(i), Res: 1e4, Steps: 10, Stride: 1}
		if err := s.SaveRun(ctx, run, nil); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 || runs[2].Name != "c" || runs[1].Seed != 1 {
		t.Errorf("runs: %+v\n", runs)
	}
	if err := s.DeleteRun(ctx, runs[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(ctx, runs[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v\n", err)
	}
	if _, err := s.Run(ctx, runs[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted run: %v\n", err)
	}
	runs, _ = s.Runs(ctx)
	if len(runs) != 2 {
		t.Errorf("runs after delete: %d\n", len(runs))
	}
}

func TestCascade(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	_, rc := testRecorder(t)
	run := &Run{Name: "x", Markers: []float64{1}}
	if err := s.SaveRun(ctx, run, rc); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatal(err)
	}
	dt, err := s.Samples(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dt.Rows != 0 {
		t.Errorf("samples left after delete: %d\n", dt.Rows)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, &Run{Name: "keep"}, nil); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Name != "keep" {
		t.Errorf("runs after reopen: %+v\n", runs)
	}
}
