// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thalamus

import (
	"fmt"

	"github.com/emer/thalcort/chans"
	"github.com/emer/thalcort/glong"
	"github.com/emer/thalcort/psp"
	"github.com/emer/thalcort/rate"
	"github.com/emer/thalcort/srk"
)

// Params are the parameters of the thalamic column
type Params struct {
	TauT  float64        `def:"20" min:"0" desc:"membrane time constant of the relay population in ms"`
	TauR  float64        `def:"20" min:"0" desc:"membrane time constant of the reticular population in ms"`
	T     rate.Params    `view:"inline" desc:"firing rate function of the relay population"`
	R     rate.Params    `view:"inline" desc:"firing rate function of the reticular population"`
	Chans chans.Params   `view:"inline" desc:"synaptic, leak and potassium leak channels, shared by both populations -- Gbar.K is g_LK"`
	TT    glong.TParams  `view:"inline" desc:"T-type calcium current of the relay population"`
	TR    glong.TParams  `view:"inline" desc:"T-type calcium current of the reticular population"`
	H     glong.HParams  `view:"inline" desc:"h current of the relay population"`
	Ca    glong.CaParams `view:"inline" desc:"calcium concentration of the relay population"`
	PspE  psp.Params     `view:"inline" desc:"excitatory PSP kernel, gamma_e"`
	PspI  psp.Params     `view:"inline" desc:"inhibitory PSP kernel, gamma_i"`
	Flux  psp.Params     `view:"inline" desc:"axonal flux kernel, nu"`
	Dphi  float64        `def:"2" min:"0" desc:"noise diffusion of the relay excitatory input -- 0 removes the noise"`
	Ntr   float64        `def:"3" min:"0" desc:"relay to reticular connectivity"`
	Nrt   float64        `def:"5" min:"0" desc:"reticular to relay connectivity"`
	Nrr   float64        `def:"19" min:"0" desc:"reticular to reticular connectivity"`
}

// OverridesN is the maximal length of the flat override vector
const OverridesN = 2

// Defaults sets the standard values
func (tp *Params) Defaults() {
	tp.TauT = 20
	tp.TauR = 20
	tp.T.Set(400.0e-3, -58.5, 6)
	tp.R.Set(400.0e-3, -58.5, 6)
	tp.Chans.Gbar.SetAll(1, 1, 1, 0.02)
	tp.Chans.Erev.SetAll(0, -70, -70, -100)
	tp.TT.Defaults()
	tp.TR.ReticularDefaults()
	tp.H.Defaults()
	tp.Ca.Defaults()
	tp.PspE.Gamma = 70.0e-3
	tp.PspI.Gamma = 100.0e-3
	tp.Flux.Gamma = 120.0e-3
	tp.Dphi = 2
	tp.Ntr = 3
	tp.Nrt = 5
	tp.Nrr = 19
	tp.Update()
}

// Update must be called after any changes to parameters
func (tp *Params) Update() {
	tp.T.Update()
	tp.R.Update()
	tp.TT.Update()
	tp.TR.Update()
	tp.PspE.Update()
	tp.PspI.Update()
	tp.Flux.Update()
}

// SetOverrides applies the flat override vector [g_h, g_LK].
// A shorter vector overrides only its leading entries.
func (tp *Params) SetOverrides(ov []float64) error {
	if len(ov) > OverridesN {
		return fmt.Errorf("thalamus: %d overrides, at most %d allowed: %w", len(ov), OverridesN, srk.ErrInvalidParam)
	}
	for i, v := range ov {
		switch i {
		case 0:
			tp.H.Gbar = v
		case 1:
			tp.Chans.Gbar.K = v
		}
	}
	tp.Update()
	return tp.Validate()
}

// Overrides returns the current values of the flat override vector
func (tp *Params) Overrides() []float64 {
	return []float64{tp.H.Gbar, tp.Chans.Gbar.K}
}

// Validate returns an ErrInvalidParam wrapping error for the first
// parameter that cannot be integrated.
func (tp *Params) Validate() error {
	pos := []struct {
		name string
		val  float64
	}{
		{"tau_t", tp.TauT}, {"tau_r", tp.TauR},
		{"sigma_t", tp.T.Sigma}, {"sigma_r", tp.R.Sigma},
		{"Qt_max", tp.T.Qmax}, {"Qr_max", tp.R.Qmax},
		{"tau_Ca", tp.Ca.Tau}, {"Ca_0", tp.Ca.Ca0},
		{"m_T slope (TC)", tp.TT.MSlope}, {"h_T slope (TC)", tp.TT.HSlope},
		{"m_T slope (RE)", tp.TR.MSlope}, {"h_T slope (RE)", tp.TR.HSlope},
		{"Q10", tp.TT.Q10},
		{"k2", tp.H.K2},
		{"gamma_e", tp.PspE.Gamma}, {"gamma_i", tp.PspI.Gamma}, {"nu", tp.Flux.Gamma},
	}
	for _, p := range pos {
		if !(p.val > 0) {
			return fmt.Errorf("thalamus: %w", srk.Invalid(p.name, p.val, "must be positive"))
		}
	}
	nonneg := []struct {
		name string
		val  float64
	}{
		{"g_h", tp.H.Gbar}, {"g_LK", tp.Chans.Gbar.K}, {"g_L", tp.Chans.Gbar.L},
		{"g_T_t", tp.TT.Gbar}, {"g_T_r", tp.TR.Gbar},
		{"k1", tp.H.K1}, {"k3", tp.H.K3}, {"k4", tp.H.K4},
		{"dphi", tp.Dphi},
		{"N_tr", tp.Ntr}, {"N_rt", tp.Nrt}, {"N_rr", tp.Nrr},
	}
	for _, p := range nonneg {
		if !(p.val >= 0) {
			return fmt.Errorf("thalamus: %w", srk.Invalid(p.name, p.val, "must be non-negative"))
		}
	}
	return nil
}
