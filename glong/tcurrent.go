// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glong

import "math"

// TKinds distinguishes the T-channel gating curves
type TKinds int32

const (
	// TRelay are the thalamocortical relay gating curves
	TRelay TKinds = iota

	// TReticular are the thalamic reticular gating curves
	TReticular
)

// TParams control the T-type calcium current of one population,
// I_T = Gbar * m_inf(V)^2 * h * (V - ECa).
// The activation m is treated as instantaneous, only h is integrated.
type TParams struct {
	Kind   TKinds  `desc:"which gating curves to use"`
	Gbar   float64 `def:"3,2.3" min:"0" desc:"maximal T conductance in mS/cm^2"`
	ECa    float64 `def:"120" desc:"calcium reversal potential in mV"`
	MOff   float64 `def:"59,52" desc:"offset of the activation curve, m_inf = 1 / (1 + exp(-(V + MOff) / MSlope))"`
	MSlope float64 `def:"6.2,7.4" desc:"slope of the activation curve in mV"`
	HOff   float64 `def:"81,80" desc:"offset of the inactivation curve, h_inf = 1 / (1 + exp((V + HOff) / HSlope))"`
	HSlope float64 `def:"4,5" desc:"slope of the inactivation curve in mV"`
	Q10    float64 `def:"3" desc:"temperature factor for the inactivation time constant"`
	QExp   float64 `def:"1.2" desc:"temperature exponent: tau_h is divided by Q10^QExp"`

	Phi float64 `view:"-" json:"-" xml:"-" desc:"Q10^QExp, computed in Update"`
}

// Defaults sets the relay population values
func (tp *TParams) Defaults() {
	tp.Kind = TRelay
	tp.Gbar = 3
	tp.ECa = 120
	tp.MOff = 59
	tp.MSlope = 6.2
	tp.HOff = 81
	tp.HSlope = 4
	tp.Q10 = 3
	tp.QExp = 1.2
	tp.Update()
}

// ReticularDefaults sets the reticular population values
func (tp *TParams) ReticularDefaults() {
	tp.Defaults()
	tp.Kind = TReticular
	tp.Gbar = 2.3
	tp.MOff = 52
	tp.MSlope = 7.4
	tp.HOff = 80
	tp.HSlope = 5
	tp.Update()
}

// Update must be called after any changes to parameters
func (tp *TParams) Update() {
	tp.Phi = math.Pow(tp.Q10, tp.QExp)
}

// MInf returns the steady-state activation at voltage v
func (tp *TParams) MInf(v float64) float64 {
	return 1 / (1 + math.Exp(-(v+tp.MOff)/tp.MSlope))
}

// HInf returns the steady-state inactivation at voltage v
func (tp *TParams) HInf(v float64) float64 {
	return 1 / (1 + math.Exp((v+tp.HOff)/tp.HSlope))
}

// TauH returns the inactivation time constant in ms at voltage v
func (tp *TParams) TauH(v float64) float64 {
	if tp.Kind == TReticular {
		return (85 + 1/(math.Exp((v+48)/4)+math.Exp(-(v+407)/50))) / tp.Phi
	}
	return (30.8 + (211.4+math.Exp((v+115.2)/5))/(1+math.Exp((v+86)/3.2))) / tp.Phi
}

// I returns the T current for voltage v and inactivation h
func (tp *TParams) I(v, h float64) float64 {
	m := tp.MInf(v)
	return tp.Gbar * m * m * h * (v - tp.ECa)
}

// DH returns the derivative of the inactivation h at voltage v
func (tp *TParams) DH(v, h float64) float64 {
	return (tp.HInf(v) - h) / tp.TauH(v)
}
