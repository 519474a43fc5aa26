// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/record"
	"github.com/emer/thalcort/stim"
	"github.com/emer/thalcort/tc"
)

// Params resolves the model parameters: defaults, Base, the selected
// sheet, the override vectors and then the named parameters.
func (cf *Config) Params() (*Params, error) {
	p := &Params{}
	p.Defaults()
	Sheets["Base"].Apply(p)
	if cf.Sheet != "" && cf.Sheet != "Base" {
		sh, has := Sheets[cf.Sheet]
		if !has {
			return nil, fmt.Errorf("config: sheet %q not found", cf.Sheet)
		}
		sh.Apply(p)
	}
	if len(cf.Cortex) > 0 {
		if err := p.Cortex.SetOverrides(cf.Cortex); err != nil {
			return nil, err
		}
	}
	if len(cf.Thalamus) > 0 {
		if err := p.Thalamus.SetOverrides(cf.Thalamus); err != nil {
			return nil, err
		}
	}
	if len(cf.Conn) > 0 {
		if err := p.Conn.SetFromSlice(cf.Conn); err != nil {
			return nil, err
		}
	}
	for _, nm := range sortedKeys(cf.Set) {
		if err := SetParam(p, nm, cf.Set[nm]); err != nil {
			return nil, err
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func sortedKeys(m map[string]float64) []string {
	nms := make([]string, 0, len(m))
	for nm := range m {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// Sim is a simulation run built from a Config
type Sim struct {
	Config *Config
	Params *Params
	Model  *tc.Model
	Stim   *stim.Controller
	Rec    *record.Recorder
	Log    *slog.Logger
}

// Build constructs the model, the stimulation controller and the
// recorder of a run
func (cf *Config) Build(lg *slog.Logger) (*Sim, error) {
	lg = logging.OrDiscard(lg)
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	p, err := cf.Params()
	if err != nil {
		return nil, err
	}
	s := &Sim{Config: cf, Params: p, Log: lg}
	s.Model, err = tc.New(&cf.Sim, &p.Cortex, &p.Thalamus, p.Conn, lg)
	if err != nil {
		return nil, err
	}
	target, err := s.Model.InputTarget(cf.Stim.Target)
	if err != nil {
		return nil, err
	}
	s.Stim, err = stim.New(&cf.Stim, cf.Sim.Res, cf.Sim.OnsetSteps(), target, cf.Sim.StimSeed())
	if err != nil {
		return nil, err
	}
	s.Rec, err = record.New(&cf.Sim, cf.Record.Stride, lg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Run runs the whole simulation: each macro-step is followed by the
// stimulation check and then by sampling
func (s *Sim) Run(ctx context.Context) error {
	s.Log.Info("run start", "name", s.Config.Name, "sheet", s.Config.Sheet, "seed", s.Config.Sim.Seed,
		"steps", s.Config.Sim.Steps(), "stim", s.Config.Stim.Mode)
	err := s.Model.Run(ctx, s.Config.Sim.Steps(), s.Stim.StepFunc(), s.Rec.StepFunc())
	s.Log.Debug("run end", "name", s.Config.Name, "samples", s.Rec.Row, "markers", len(s.Stim.Markers))
	return err
}

// Markers returns the stimulation markers in seconds after the onset
func (s *Sim) Markers() []float64 {
	return s.Stim.MarkerTimes(s.Config.Sim.Res)
}
