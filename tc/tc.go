// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tc couples the cortical and the thalamic column into the
thalamocortical model and advances them in lockstep.

For each of the 4 stages of a macro-step both columns complete the stage
before either starts the next one, and each reads the partner's axonal
flux as the input of the same stage.  After stage 4 both columns combine
their stages and redraw their noise.  The order of the two modules within
a stage is irrelevant because a stage only reads slots that were written
by earlier stages.

A Model is single-threaded.  Independent runs each own a Model with its
own noise sources and can run concurrently.
*/
package tc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emer/thalcort/cortex"
	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/thalamus"
)

// StepFunc is called after every macro-step of Run, e.g., for stimulation
// and sampling.  A non-nil error stops the run.
type StepFunc func(m *Model) error

// Model is the coupled thalamocortical model
type Model struct {
	Config   Config           `desc:"simulation constants"`
	Conn     srk.Conn         `desc:"long-range connectivity"`
	Cortex   *cortex.Column   `desc:"cortical column"`
	Thalamus *thalamus.Column `desc:"thalamic column"`
	Time     Time             `desc:"timing state"`
	Log      *slog.Logger     `view:"-" desc:"logger for run progress"`
}

// New returns a coupled model.  All parameters are copied and validated,
// any invalid one is returned as an error wrapping srk.ErrInvalidParam.
func New(cfg *Config, cp *cortex.Params, tp *thalamus.Params, conn srk.Conn, lg *slog.Logger) (*Model, error) {
	m := &Model{Config: *cfg, Conn: conn, Log: logging.OrDiscard(lg)}
	m.Config.Update()
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}
	var err error
	m.Cortex, err = cortex.New(cp, conn, m.Config.Dt, m.Config.CortexSeed())
	if err != nil {
		return nil, err
	}
	m.Thalamus, err = thalamus.New(tp, conn, m.Config.Dt, m.Config.ThalamusSeed())
	if err != nil {
		return nil, err
	}
	m.Cortex.Couple(m.Thalamus)
	m.Thalamus.Couple(m.Cortex)
	m.Time.SetRes(m.Config.Res)
	m.Time.Reset()
	return m, nil
}

// Step advances both columns by one macro-step
func (m *Model) Step() {
	for _, st := range srk.AllStages {
		m.Cortex.SetStage(st)
		m.Thalamus.SetStage(st)
	}
	m.Cortex.Combine()
	m.Thalamus.Combine()
	m.Time.StepInc()
}

// Run advances the model by n macro-steps, calling the step functions
// after each one.  The context is checked between macro-steps only.
func (m *Model) Run(ctx context.Context, n int, fns ...StepFunc) error {
	m.Log.Debug("run start", "steps", n, "time_ms", m.Time.Time)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run stopped at step %d: %w", m.Time.StepTot, err)
		}
		m.Step()
		for _, fn := range fns {
			if err := fn(m); err != nil {
				return err
			}
		}
		if m.Time.Step == 0 {
			m.Log.Log(ctx, logging.LevelTrace, "second done", "sec", m.Time.Sec, "vp", m.Vp())
		}
	}
	m.Log.Debug("run done", "steps", n, "time_ms", m.Time.Time)
	return nil
}

// Reset returns both columns to their initial state and resets the clock.
// The noise streams continue.
func (m *Model) Reset() {
	m.Cortex.InitState()
	m.Thalamus.InitState()
	m.Cortex.SetInput(0)
	m.Thalamus.SetInput(0)
	m.Time.Reset()
}

// InputTarget returns the column that receives stimulation, by name
func (m *Model) InputTarget(name string) (srk.InputSetter, error) {
	switch name {
	case "", "thalamus":
		return m.Thalamus, nil
	case "cortex":
		return m.Cortex, nil
	}
	return nil, fmt.Errorf("unknown stimulation target %q, want thalamus or cortex: %w", name, srk.ErrInvalidParam)
}

// Vp returns the cortical pyramidal voltage
func (m *Model) Vp() float64 { return m.Cortex.Vp() }

// Vt returns the thalamic relay voltage
func (m *Model) Vt() float64 { return m.Thalamus.Vt() }

// Vr returns the thalamic reticular voltage
func (m *Model) Vr() float64 { return m.Thalamus.Vr() }

// Ca returns the relay calcium concentration
func (m *Model) Ca() float64 { return m.Thalamus.Ca() }

// ActH returns the effective h activation of the relay population
func (m *Model) ActH() float64 { return m.Thalamus.ActH() }

// StepTot returns the number of completed macro-steps
func (m *Model) StepTot() int { return m.Time.StepTot }

// TimeMs returns the simulated time in ms
func (m *Model) TimeMs() float64 { return m.Time.Time }
