// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the standard ohmic conductance channels of the
neural-mass populations: synaptic AMPA and GABA-A channels gated by the
postsynaptic potential state, a constant leak, and a potassium channel.
All currents follow Ohm's law: I = g * (V - E).
*/
package chans

// Chans are ion channel values used for either conductances (Gbar) or
// reversal potentials (Erev) of a population.
type Chans struct {
	AMPA float64 `desc:"excitatory glutamatergic AMPA channels activated by afferent firing"`
	GABA float64 `desc:"inhibitory GABA-A channels activated by afferent firing"`
	L    float64 `desc:"constant leak channels -- determines resting potential"`
	K    float64 `desc:"potassium leak channels -- hyperpolarizing relative to leak"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(ampa, gaba, l, k float64) {
	ch.AMPA, ch.GABA, ch.L, ch.K = ampa, gaba, l, k
}

// Ohm returns the current through a channel of conductance g at voltage v
func Ohm(g, v, erev float64) float64 {
	return g * (v - erev)
}

// Syn returns a synaptic current, where s is the postsynaptic potential
// state scaling the maximal conductance g.
func Syn(g, s, v, erev float64) float64 {
	return g * s * (v - erev)
}

// Params are the conductances and reversal potentials of one population
type Params struct {
	Gbar Chans `view:"inline" desc:"[Defaults: 1, 1, 1, 0] maximal conductances in mS/cm^2"`
	Erev Chans `view:"inline" desc:"[Defaults: 0, -70, -64, -100] reversal potentials in mV"`
}

// Defaults sets the cortical values
func (cp *Params) Defaults() {
	cp.Gbar.SetAll(1, 1, 1, 0)
	cp.Erev.SetAll(0, -70, -64, -100)
}

// AMPA returns the excitatory synaptic current for PSP state s
func (cp *Params) AMPA(s, v float64) float64 {
	return Syn(cp.Gbar.AMPA, s, v, cp.Erev.AMPA)
}

// GABA returns the inhibitory synaptic current for PSP state s
func (cp *Params) GABA(s, v float64) float64 {
	return Syn(cp.Gbar.GABA, s, v, cp.Erev.GABA)
}

// Leak returns the leak current
func (cp *Params) Leak(v float64) float64 {
	return Ohm(cp.Gbar.L, v, cp.Erev.L)
}

// KLeak returns the potassium leak current
func (cp *Params) KLeak(v float64) float64 {
	return Ohm(cp.Gbar.K, v, cp.Erev.K)
}
