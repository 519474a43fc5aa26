// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"

	"github.com/emer/thalcort/chans"
	"github.com/emer/thalcort/kna"
	"github.com/emer/thalcort/psp"
	"github.com/emer/thalcort/rate"
	"github.com/emer/thalcort/srk"
)

// Params are the parameters of the cortical column
type Params struct {
	TauE  float64      `def:"30" min:"0" desc:"membrane time constant of the pyramidal population in ms"`
	TauI  float64      `def:"30" min:"0" desc:"membrane time constant of the inhibitory population in ms"`
	E     rate.Params  `view:"inline" desc:"firing rate function of the pyramidal population"`
	I     rate.Params  `view:"inline" desc:"firing rate function of the inhibitory population"`
	Chans chans.Params `view:"inline" desc:"synaptic and leak channels, shared by both populations"`
	KNa   kna.Params   `view:"inline" desc:"sodium-dependent potassium adaptation of the pyramidal population"`
	PspE  psp.Params   `view:"inline" desc:"excitatory PSP kernel, gamma_e"`
	PspI  psp.Params   `view:"inline" desc:"inhibitory PSP kernel, gamma_i"`
	Flux  psp.Params   `view:"inline" desc:"axonal flux kernel, nu"`
	Dphi  float64      `def:"2" min:"0" desc:"noise diffusion of the excitatory input -- 0 removes the noise"`
	Nee   float64      `def:"115" min:"0" desc:"pyramidal to pyramidal connectivity"`
	Nei   float64      `def:"72" min:"0" desc:"pyramidal to inhibitory connectivity"`
	Nie   float64      `def:"90" min:"0" desc:"inhibitory to pyramidal connectivity"`
	Nii   float64      `def:"90" min:"0" desc:"inhibitory to inhibitory connectivity"`
}

// OverridesN is the maximal length of the flat override vector
const OverridesN = 3

// Defaults sets the standard values
func (cp *Params) Defaults() {
	cp.TauE = 30
	cp.TauI = 30
	cp.E.Set(30.0e-3, -58.5, 4)
	cp.I.Set(60.0e-3, -58.5, 6)
	cp.Chans.Gbar.SetAll(1, 1, 1, 0)
	cp.Chans.Erev.SetAll(0, -70, -64, -100)
	cp.KNa.Defaults()
	cp.PspE.Gamma = 70.0e-3
	cp.PspI.Gamma = 58.6e-3
	cp.Flux.Gamma = 120.0e-3
	cp.Dphi = 2
	cp.Nee = 115
	cp.Nei = 72
	cp.Nie = 90
	cp.Nii = 90
	cp.Update()
}

// Update must be called after any changes to parameters
func (cp *Params) Update() {
	cp.E.Update()
	cp.I.Update()
	cp.KNa.Update()
	cp.PspE.Update()
	cp.PspI.Update()
	cp.Flux.Update()
}

// SetOverrides applies the flat override vector [sigma_e, g_KNa, dphi].
// A shorter vector overrides only its leading entries.
func (cp *Params) SetOverrides(ov []float64) error {
	if len(ov) > OverridesN {
		return fmt.Errorf("cortex: %d overrides, at most %d allowed: %w", len(ov), OverridesN, srk.ErrInvalidParam)
	}
	for i, v := range ov {
		switch i {
		case 0:
			cp.E.Sigma = v
		case 1:
			cp.KNa.Gbar = v
		case 2:
			cp.Dphi = v
		}
	}
	cp.Update()
	return cp.Validate()
}

// Overrides returns the current values of the flat override vector
func (cp *Params) Overrides() []float64 {
	return []float64{cp.E.Sigma, cp.KNa.Gbar, cp.Dphi}
}

// Validate returns an ErrInvalidParam wrapping error for the first
// parameter that cannot be integrated.
func (cp *Params) Validate() error {
	pos := []struct {
		name string
		val  float64
	}{
		{"tau_e", cp.TauE}, {"tau_i", cp.TauI},
		{"sigma_e", cp.E.Sigma}, {"sigma_i", cp.I.Sigma},
		{"Qe_max", cp.E.Qmax}, {"Qi_max", cp.I.Qmax},
		{"tau_Na", cp.KNa.TauNa}, {"Na_eq", cp.KNa.NaEq},
		{"gamma_e", cp.PspE.Gamma}, {"gamma_i", cp.PspI.Gamma}, {"nu", cp.Flux.Gamma},
	}
	for _, p := range pos {
		if !(p.val > 0) {
			return fmt.Errorf("cortex: %w", srk.Invalid(p.name, p.val, "must be positive"))
		}
	}
	nonneg := []struct {
		name string
		val  float64
	}{
		{"g_KNa", cp.KNa.Gbar}, {"g_L", cp.Chans.Gbar.L}, {"dphi", cp.Dphi},
		{"N_ee", cp.Nee}, {"N_ei", cp.Nei}, {"N_ie", cp.Nie}, {"N_ii", cp.Nii},
	}
	for _, p := range nonneg {
		if !(p.val >= 0) {
			return fmt.Errorf("cortex: %w", srk.Invalid(p.name, p.val, "must be non-negative"))
		}
	}
	return nil
}
