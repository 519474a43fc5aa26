// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"sort"

	"github.com/emer/thalcort/cortex"
	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/thalamus"
)

// Params are the model parameters that sheets and overrides act on
type Params struct {
	Cortex   cortex.Params
	Thalamus thalamus.Params
	Conn     srk.Conn
}

// Defaults sets the standard values
func (p *Params) Defaults() {
	p.Cortex.Defaults()
	p.Thalamus.Defaults()
	p.Conn.Defaults()
}

// Update must be called after any changes to parameters
func (p *Params) Update() {
	p.Cortex.Update()
	p.Thalamus.Update()
}

// Validate returns the first invalid parameter
func (p *Params) Validate() error {
	if err := p.Cortex.Validate(); err != nil {
		return err
	}
	if err := p.Thalamus.Validate(); err != nil {
		return err
	}
	return p.Conn.Validate()
}

// Sel is one entry of a parameter sheet
type Sel struct {
	Sel string        `desc:"part of the model the entry sets: Cortex, Thalamus or Conn"`
	Doc string        `desc:"description of the entry"`
	Set func(*Params) `desc:"sets the parameters"`
}

// Sheet is a list of entries applied in order
type Sheet []*Sel

// Apply applies all entries of the sheet
func (sh Sheet) Apply(p *Params) {
	for _, sl := range sh {
		sl.Set(p)
	}
	p.Update()
}

// Sheets are the named parameter sheets.  Base is always applied, and
// others can be optionally selected to apply on top of that.
var Sheets = map[string]Sheet{
	"Base": {
		{Sel: "Conn", Doc: "thalamocortical loop",
			Set: func(p *Params) {
				p.Conn.Et = 2.6
				p.Conn.Er = 2.6
				p.Conn.Te = 2.5
				p.Conn.Ti = 2.5
			}},
	},
	"Wake": {
		{Sel: "Cortex", Doc: "weak adaptation: no slow oscillation",
			Set: func(p *Params) {
				p.Cortex.KNa.Gbar = 0.5
			}},
		{Sel: "Thalamus", Doc: "depolarized relay cells, no bursting",
			Set: func(p *Params) {
				p.Thalamus.Chans.Gbar.K = 0.01
			}},
	},
	"N2": {
		{Sel: "Cortex", Doc: "occasional K-complexes",
			Set: func(p *Params) {
				p.Cortex.E.Sigma = 4.6
				p.Cortex.KNa.Gbar = 1.33
			}},
		{Sel: "Thalamus", Doc: "spindle generating regime",
			Set: func(p *Params) {
				p.Thalamus.H.Gbar = 0.062
				p.Thalamus.Chans.Gbar.K = 0.024
			}},
	},
	"N3": {
		{Sel: "Cortex", Doc: "strong adaptation: sustained slow oscillation",
			Set: func(p *Params) {
				p.Cortex.E.Sigma = 4.2
				p.Cortex.KNa.Gbar = 2
			}},
		{Sel: "Thalamus", Doc: "hyperpolarized relay cells",
			Set: func(p *Params) {
				p.Thalamus.H.Gbar = 0.051
				p.Thalamus.Chans.Gbar.K = 0.03
			}},
	},
}

// SheetNames returns the names of all sheets, sorted
func SheetNames() []string {
	nms := make([]string, 0, len(Sheets))
	for nm := range Sheets {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// setters are the parameters that can be set by name
var setters = map[string]func(p *Params, v float64){
	"cortex.sigma_e": func(p *Params, v float64) { p.Cortex.E.Sigma = v },
	"cortex.g_KNa":   func(p *Params, v float64) { p.Cortex.KNa.Gbar = v },
	"cortex.dphi":    func(p *Params, v float64) { p.Cortex.Dphi = v },
	"cortex.N_ee":    func(p *Params, v float64) { p.Cortex.Nee = v },
	"cortex.N_ei":    func(p *Params, v float64) { p.Cortex.Nei = v },
	"cortex.N_ie":    func(p *Params, v float64) { p.Cortex.Nie = v },
	"cortex.N_ii":    func(p *Params, v float64) { p.Cortex.Nii = v },
	"thalamus.g_h":   func(p *Params, v float64) { p.Thalamus.H.Gbar = v },
	"thalamus.g_LK":  func(p *Params, v float64) { p.Thalamus.Chans.Gbar.K = v },
	"thalamus.g_T_t": func(p *Params, v float64) { p.Thalamus.TT.Gbar = v },
	"thalamus.g_T_r": func(p *Params, v float64) { p.Thalamus.TR.Gbar = v },
	"thalamus.dphi":  func(p *Params, v float64) { p.Thalamus.Dphi = v },
	"conn.N_et":      func(p *Params, v float64) { p.Conn.Et = v },
	"conn.N_er":      func(p *Params, v float64) { p.Conn.Er = v },
	"conn.N_te":      func(p *Params, v float64) { p.Conn.Te = v },
	"conn.N_ti":      func(p *Params, v float64) { p.Conn.Ti = v },
}

// ParamNames returns the names accepted by SetParam, sorted
func ParamNames() []string {
	nms := make([]string, 0, len(setters))
	for nm := range setters {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// SetParam sets the named parameter, see ParamNames
func SetParam(p *Params, name string, v float64) error {
	fn, has := setters[name]
	if !has {
		return fmt.Errorf("config: parameter %q not found: %w", name, srk.ErrInvalidParam)
	}
	fn(p, v)
	p.Update()
	return nil
}
