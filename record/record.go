// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package record samples the observables of a running model into an
etable.Table: nothing is recorded during the onset, after that every
Stride-th step (counted from the start of the run) gives one row.

The table can be written as CSV (via etable) or as an Arrow IPC file,
and summarized per column.
*/
package record

import (
	"fmt"
	"log/slog"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/tc"
)

// Observer is the read-only view of a model that the recorder samples
type Observer interface {
	Vp() float64
	Vt() float64
	Vr() float64
	Ca() float64
	ActH() float64
}

// Columns are the sampled columns, in table order.  Time is in seconds
// after the onset.
var Columns = []string{"Time", "Vp", "Vt", "Vr", "Ca", "ActH"}

// Recorder samples an Observer into a table
type Recorder struct {
	Table  *etable.Table `desc:"sample table, one row per sample"`
	Stride int           `def:"100" min:"1" desc:"steps between samples"`
	Onset  int           `desc:"steps before the first sample"`
	Res    float64       `desc:"steps per second, for the Time column"`
	Row    int           `desc:"number of rows recorded so far"`

	vals [][]float64
	log  *slog.Logger
}

// New returns a recorder for a run with the given constants, with rows
// allocated for the whole recorded duration.
func New(cfg *tc.Config, stride int, lg *slog.Logger) (*Recorder, error) {
	if stride < 1 {
		return nil, fmt.Errorf("record: %w", srk.Invalid("stride", float64(stride), "must be at least 1"))
	}
	rc := &Recorder{Stride: stride, Onset: cfg.OnsetSteps(), Res: cfg.Res, log: logging.OrDiscard(lg)}
	n := NSamples(rc.Onset, cfg.Steps(), stride)
	rc.Table = &etable.Table{}
	rc.Table.SetMetaData("name", "Samples")
	rc.Table.SetMetaData("desc", "thalamocortical observables, one row per sample")
	sch := etable.Schema{}
	for _, cn := range Columns {
		sch = append(sch, etable.Column{Name: cn, Type: etensor.FLOAT64})
	}
	rc.Table.SetFromSchema(sch, n)
	rc.cacheCols()
	rc.log.Debug("recorder allocated", "rows", n, "size", datasize.ByteSize(n*len(Columns)*8).HumanReadable())
	return rc, nil
}

func (rc *Recorder) cacheCols() {
	rc.vals = make([][]float64, len(Columns))
	for i := range Columns {
		rc.vals[i] = rc.Table.Cols[i].(*etensor.Float64).Values
	}
}

// NSamples returns the number of samples taken from steps [onset, steps)
func NSamples(onset, steps, stride int) int {
	first := ((onset + stride - 1) / stride) * stride
	if first >= steps {
		return 0
	}
	return (steps-1-first)/stride + 1
}

// Sample records a row if step (0-based) is due, returning whether it was
func (rc *Recorder) Sample(step int, ob Observer) bool {
	if step < rc.Onset || step%rc.Stride != 0 {
		return false
	}
	if rc.Row >= rc.Table.Rows {
		rc.Table.SetNumRows(rc.Row + 1)
		rc.cacheCols()
	}
	row := rc.Row
	rc.vals[0][row] = float64(step-rc.Onset) / rc.Res
	rc.vals[1][row] = ob.Vp()
	rc.vals[2][row] = ob.Vt()
	rc.vals[3][row] = ob.Vr()
	rc.vals[4][row] = ob.Ca()
	rc.vals[5][row] = ob.ActH()
	rc.Row++
	return true
}

// StepFunc returns the function that samples after every macro-step of a model run
func (rc *Recorder) StepFunc() tc.StepFunc {
	return func(m *tc.Model) error {
		rc.Sample(m.StepTot()-1, m)
		return nil
	}
}

// Values returns the recorded values of the named column
func (rc *Recorder) Values(col string) ([]float64, error) {
	for i, cn := range Columns {
		if cn == col {
			return rc.vals[i][:rc.Row], nil
		}
	}
	return nil, fmt.Errorf("record: column %q not found", col)
}

// Trim drops allocated rows that were never recorded, e.g., after a canceled run
func (rc *Recorder) Trim() {
	if rc.Row < rc.Table.Rows {
		rc.Table.SetNumRows(rc.Row)
		rc.cacheCols()
	}
}
