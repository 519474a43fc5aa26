// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glong

import "math"

// HParams control the h-current of the relay population,
// I_h = Gbar * (m_h + Ginc * m_h2) * (V - Eh), where m_h2 is the fraction
// of channels with bound, calcium-activated messenger protein.
type HParams struct {
	Gbar float64 `def:"0.051" min:"0" desc:"maximal h conductance in mS/cm^2"`
	Eh   float64 `def:"-40" desc:"h reversal potential in mV"`
	Ginc float64 `def:"2" desc:"conductance increase of channels with bound protein"`
	K1   float64 `def:"2.5e7" desc:"calcium binding rate onto the messenger protein"`
	K2   float64 `def:"4e-4" desc:"calcium unbinding rate from the messenger protein"`
	K3   float64 `def:"0.1" desc:"binding rate of the activated protein onto open channels, in ms^-1"`
	K4   float64 `def:"1e-3" desc:"unbinding rate of the protein from the channels, in ms^-1"`
	NP   float64 `def:"3" desc:"Hill exponent of calcium binding"`
}

// Defaults sets the standard values
func (hp *HParams) Defaults() {
	hp.Gbar = 0.051
	hp.Eh = -40
	hp.Ginc = 2
	hp.K1 = 2.5e7
	hp.K2 = 4e-4
	hp.K3 = 0.1
	hp.K4 = 1e-3
	hp.NP = 3
}

// MInf returns the steady-state activation at voltage v
func (hp *HParams) MInf(v float64) float64 {
	return 1 / (1 + math.Exp((v+75)/5.5))
}

// TauM returns the activation time constant in ms at voltage v
func (hp *HParams) TauM(v float64) float64 {
	return 20 + 1000/(math.Exp((v+71.5)/14.2)+math.Exp(-(v+89)/11.6))
}

// P returns the fraction of calcium-activated messenger protein
// for calcium concentration ca
func (hp *HParams) P(ca float64) float64 {
	kc := hp.K1 * math.Pow(ca, hp.NP)
	return kc / (kc + hp.K2)
}

// Act returns the effective activation m_h + Ginc * m_h2
func (hp *HParams) Act(mh, mh2 float64) float64 {
	return mh + hp.Ginc*mh2
}

// I returns the h current
func (hp *HParams) I(v, mh, mh2 float64) float64 {
	return hp.Gbar * hp.Act(mh, mh2) * (v - hp.Eh)
}

// DM returns the derivatives of the free (mh) and bound (mh2) activations
func (hp *HParams) DM(v, ca, mh, mh2 float64) (dmh, dmh2 float64) {
	bind := hp.K3*hp.P(ca)*mh - hp.K4*mh2
	dmh = (hp.MInf(v)*(1-mh2)-mh)/hp.TauM(v) - bind
	dmh2 = bind
	return
}
