// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/emer/thalcort/cortex"
	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/tc"
	"github.com/emer/thalcort/thalamus"
)

// ramp is an Observer whose values follow the step
type ramp struct {
	step int
}

func (r *ramp) Vp() float64   { return float64(r.step) }
func (r *ramp) Vt() float64   { return -float64(r.step) }
func (r *ramp) Vr() float64   { return 1 }
func (r *ramp) Ca() float64   { return 2 }
func (r *ramp) ActH() float64 { return 0.5 * float64(r.step) }

func smallConfig() *tc.Config {
	cfg := &tc.Config{}
	cfg.Defaults()
	cfg.Onset = 0.01
	cfg.Duration = 0.05
	cfg.Update()
	return cfg
}

// fill samples steps 0..Steps-1 of the ramp observer
func fill(t *testing.T, cfg *tc.Config, stride int) *Recorder {
	rc, err := New(cfg, stride, nil)
	if err != nil {
		t.Fatal(err)
	}
	ob := &ramp{}
	for s := 0; s < cfg.Steps(); s++ {
		ob.step = s
		rc.Sample(s, ob)
	}
	return rc
}

func TestNSamples(t *testing.T) {
	tests := []struct {
		onset, steps, stride, want int
	}{
		{200000, 500000, 100, 3000},
		{5, 30, 10, 2},
		{0, 30, 10, 3},
		{0, 31, 10, 4},
		{40, 30, 10, 0},
		{0, 5, 1, 5},
	}
	for _, tt := range tests {
		if got := NSamples(tt.onset, tt.steps, tt.stride); got != tt.want {
			t.Errorf("NSamples(%d, %d, %d) = %d, want %d", tt.onset, tt.steps, tt.stride, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	cfg := smallConfig()
	rc := fill(t, cfg, 100)
	if rc.Row != 5 || rc.Table.Rows != 5 {
		t.Fatalf("rows: %d, table rows: %d\n", rc.Row, rc.Table.Rows)
	}
	vp, err := rc.Values("Vp")
	if err != nil {
		t.Fatal(err)
	}
	tm, _ := rc.Values("Time")
	for i := range vp {
		if vp[i] != float64(100+100*i) {
			t.Errorf("row %d: Vp %v\n", i, vp[i])
		}
		if math.Abs(tm[i]-0.01*float64(i)) > 1.0e-12 {
			t.Errorf("row %d: time %v\n", i, tm[i])
		}
	}
	if _, err := rc.Values("Vx"); err == nil {
		t.Errorf("unknown column must fail\n")
	}
	if _, err := New(cfg, 0, nil); !errors.Is(err, srk.ErrInvalidParam) {
		t.Errorf("zero stride must fail, got: %v\n", err)
	}
}

func TestGrow(t *testing.T) {
	cfg := smallConfig()
	rc, _ := New(cfg, 100, nil)
	ob := &ramp{}
	// sampling past the planned duration grows the table
	for s := 0; s < 2*cfg.Steps(); s++ {
		ob.step = s
		rc.Sample(s, ob)
	}
	if rc.Row != 11 || rc.Table.Rows != 11 {
		t.Errorf("rows: %d, table rows: %d\n", rc.Row, rc.Table.Rows)
	}
	vt, _ := rc.Values("Vt")
	if vt[10] != -1100 {
		t.Errorf("last Vt: %v\n", vt[10])
	}
}

func TestSummary(t *testing.T) {
	rc := fill(t, smallConfig(), 100)
	sts := rc.Summary()
	if len(sts) != len(Columns)-1 {
		t.Fatalf("summary columns: %d\n", len(sts))
	}
	vp := sts[0]
	if vp.Name != "Vp" || vp.Range.Min != 100 || vp.Range.Max != 500 || vp.Mean != 300 {
		t.Errorf("Vp summary: %+v\n", vp)
	}
	if vr := sts[2]; vr.Std != 0 || vr.Mean != 1 {
		t.Errorf("constant column summary: %+v\n", vr)
	}
}

func TestWriteCSV(t *testing.T) {
	rc := fill(t, smallConfig(), 100)
	var buf bytes.Buffer
	if err := rc.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Errorf("lines: %d, want header + 5\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Vp") || !strings.Contains(lines[0], "ActH") {
		t.Errorf("header: %q\n", lines[0])
	}
}

func TestWriteArrow(t *testing.T) {
	rc := fill(t, smallConfig(), 100)
	var buf bytes.Buffer
	if err := rc.WriteArrow(&buf); err != nil {
		t.Fatal(err)
	}
	rdr, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer rdr.Close()
	if rdr.NumRecords() != 1 {
		t.Fatalf("records: %d\n", rdr.NumRecords())
	}
	rec, err := rdr.Record(0)
	if err != nil {
		t.Fatal(err)
	}
	if int(rec.NumRows()) != rc.Row || int(rec.NumCols()) != len(Columns) {
		t.Fatalf("shape: %d x %d\n", rec.NumRows(), rec.NumCols())
	}
	if rec.ColumnName(5) != "ActH" {
		t.Errorf("column name: %v\n", rec.ColumnName(5))
	}
	act := rec.Column(5).(*array.Float64).Float64Values()
	want, _ := rc.Values("ActH")
	for i := range want {
		if act[i] != want[i] {
			t.Errorf("row %d: %v, want %v\n", i, act[i], want[i])
		}
	}
}

func TestModelRun(t *testing.T) {
	cfg := smallConfig()
	cp := cortex.Params{}
	cp.Defaults()
	tp := thalamus.Params{}
	tp.Defaults()
	conn := srk.Conn{}
	conn.Defaults()
	m, err := tc.New(cfg, &cp, &tp, conn, nil)
	if err != nil {
		t.Fatal(err)
	}
	rc, _ := New(cfg, 100, nil)
	if err := m.Run(context.Background(), cfg.Steps(), rc.StepFunc()); err != nil {
		t.Fatal(err)
	}
	if rc.Row != 5 {
		t.Errorf("rows: %d\n", rc.Row)
	}
	ca, _ := rc.Values("Ca")
	for i, v := range ca {
		if !(v > 0) {
			t.Errorf("row %d: Ca %v\n", i, v)
		}
	}
	dir := t.TempDir()
	for _, fn := range []string{"run.csv", "run.arrow"} {
		path := filepath.Join(dir, fn)
		if err := rc.Save(path); err != nil {
			t.Fatal(err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s not written: %v\n", fn, err)
		}
	}
}
