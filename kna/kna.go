// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kna provides the sodium-dependent potassium current of the cortical
pyramidal population, together with the sodium concentration dynamics that
drive it: sodium enters in proportion to the firing rate and is removed by
the Na-K pump.  Together they produce the slow firing-rate adaptation
underlying cortical up and down states.
*/
package kna

import "math"

// pumpK is the pump saturation constant, 15^3 mM^3
const pumpK = 3375

// Params are the sodium-dependent potassium adaptation parameters
type Params struct {
	Gbar    float64 `def:"1.33" min:"0" desc:"maximal conductance of the KNa current in mS/cm^2 -- 0 removes all sodium feedback onto the voltage"`
	EK      float64 `def:"-100" desc:"potassium reversal potential in mV"`
	AlphaNa float64 `def:"2" desc:"sodium influx per spike in mM ms"`
	TauNa   float64 `def:"1.7" min:"0" desc:"sodium time constant in ms"`
	Rpump   float64 `def:"0.09" min:"0" desc:"Na-K pump constant in mM/ms"`
	NaEq    float64 `def:"9.5" min:"0" desc:"equilibrium sodium concentration in mM"`

	PumpEq float64 `view:"-" json:"-" xml:"-" desc:"pump saturation at NaEq, computed in Update"`
}

// Defaults sets the standard values
func (kp *Params) Defaults() {
	kp.Gbar = 1.33
	kp.EK = -100
	kp.AlphaNa = 2
	kp.TauNa = 1.7
	kp.Rpump = 0.09
	kp.NaEq = 9.5
	kp.Update()
}

// Update must be called after any changes to parameters
func (kp *Params) Update() {
	kp.PumpEq = pumpSat(kp.NaEq)
}

func pumpSat(na float64) float64 {
	na3 := na * na * na
	return na3 / (na3 + pumpK)
}

// W returns the fraction of open KNa channels for sodium concentration na
func (kp *Params) W(na float64) float64 {
	return 0.37 / (1 + math.Pow(38.7/na, 3.5))
}

// I returns the KNa current at voltage v and sodium concentration na
func (kp *Params) I(v, na float64) float64 {
	return kp.Gbar * kp.W(na) * (v - kp.EK)
}

// Pump returns the net Na-K pump rate, which is 0 at NaEq
func (kp *Params) Pump(na float64) float64 {
	return kp.Rpump * (pumpSat(na) - kp.PumpEq)
}

// DNa returns the sodium concentration derivative for pyramidal firing rate qe
func (kp *Params) DNa(na, qe float64) float64 {
	return (kp.AlphaNa*qe - kp.Pump(na)) / kp.TauNa
}
