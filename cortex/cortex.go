// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cortex implements the cortical column of the thalamocortical
neural-mass model: a pyramidal (e) and an inhibitory (i) population with
second-order synaptic kernels, sodium-dependent potassium adaptation of the
pyramidal population, and the long-range axonal flux phi_e that is sent
to the thalamus.

The column is advanced with the stochastic Runge-Kutta scheme of package
srk: SetStage for each of the 4 stages, then Combine.  Noise enters the
excitatory inputs x_ee and x_ei.
*/
package cortex

import (
	"fmt"

	"github.com/emer/thalcort/noise"
	"github.com/emer/thalcort/srk"
)

// noise channels
const (
	// NoiseEE is the noise channel of the pyramidal excitatory input
	NoiseEE = iota

	// NoiseEI is the noise channel of the inhibitory excitatory input
	NoiseEI

	NoiseN
)

// State are the dynamical variables of the column
type State struct {
	Ve  srk.Var `desc:"pyramidal membrane voltage in mV"`
	Vi  srk.Var `desc:"inhibitory membrane voltage in mV"`
	Na  srk.Var `desc:"sodium concentration of the pyramidal population in mM"`
	Yee srk.Var `desc:"PSP from pyramidal to pyramidal population"`
	Yei srk.Var `desc:"PSP from pyramidal to inhibitory population"`
	Yie srk.Var `desc:"PSP from inhibitory to pyramidal population"`
	Yii srk.Var `desc:"PSP from inhibitory to inhibitory population"`
	Phi srk.Var `desc:"axonal flux sent to the thalamus"`
	Xee srk.Var `desc:"derivative of Yee"`
	Xei srk.Var `desc:"derivative of Yei"`
	Xie srk.Var `desc:"derivative of Yie"`
	Xii srk.Var `desc:"derivative of Yii"`
	X   srk.Var `desc:"derivative of Phi"`
}

// VarNames are the names of the State variables, in field order
var VarNames = []string{"Ve", "Vi", "Na", "Yee", "Yei", "Yie", "Yii", "Phi", "Xee", "Xei", "Xie", "Xii", "X"}

// Vars returns pointers to all variables, in VarNames order
func (st *State) Vars() []*srk.Var {
	return []*srk.Var{&st.Ve, &st.Vi, &st.Na, &st.Yee, &st.Yei, &st.Yie, &st.Yii, &st.Phi, &st.Xee, &st.Xei, &st.Xie, &st.Xii, &st.X}
}

// Column is the cortical module
type Column struct {
	Params Params   `desc:"column parameters"`
	Conn   srk.Conn `desc:"long-range connectivity -- only Te and Ti are used here"`
	Dt     float64  `desc:"integration time step in ms"`
	St     State    `desc:"dynamical state"`
	Input  float64  `desc:"external drive added to the pyramidal excitatory input -- 0 is off"`

	thal  srk.FluxSource
	noise *noise.Source
}

// New returns a column for the given parameters, connectivity and time
// step, with its own noise source seeded from seed.  The parameters are
// copied and validated.
func New(p *Params, conn srk.Conn, dt float64, seed uint64) (*Column, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("cortex: %w", err)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("cortex: %w", srk.Invalid("dt", dt, "must be positive"))
	}
	c := &Column{Params: *p, Conn: conn, Dt: dt}
	c.Params.Update()
	c.noise = noise.New(NoiseN, c.Params.Dphi, dt, seed)
	c.InitState()
	return c, nil
}

// InitState sets the resting state: voltages at the leak reversal,
// sodium at equilibrium and all synaptic states at 0.
func (c *Column) InitState() {
	for _, v := range c.St.Vars() {
		v.Init(0)
	}
	c.St.Ve.Init(c.Params.Chans.Erev.L)
	c.St.Vi.Init(c.Params.Chans.Erev.L)
	c.St.Na.Init(c.Params.KNa.NaEq)
}

// Couple sets the thalamic flux source.  A nil source means no thalamic input.
func (c *Column) Couple(thal srk.FluxSource) {
	c.thal = thal
}

// SetInput sets the external drive, 0 = off
func (c *Column) SetInput(strength float64) {
	c.Input = strength
}

// Noise returns the noise source of the column
func (c *Column) Noise() *noise.Source {
	return c.noise
}

// FluxAt returns the axonal flux as input to the given stage
func (c *Column) FluxAt(st srk.Stages) float64 {
	return c.St.Phi.In(st)
}

// SetStage evaluates all derivatives on the inputs of stage st and writes
// the stage values.  The thalamic flux is read at the same stage.
func (c *Column) SetStage(st srk.Stages) {
	cp := &c.Params
	s := &c.St
	dt := c.Dt

	ve, vi, na := s.Ve.In(st), s.Vi.In(st), s.Na.In(st)
	yee, yei, yie, yii := s.Yee.In(st), s.Yei.In(st), s.Yie.In(st), s.Yii.In(st)
	phi := s.Phi.In(st)
	xee, xei, xie, xii, x := s.Xee.In(st), s.Xei.In(st), s.Xie.In(st), s.Xii.In(st), s.X.In(st)

	qe := cp.E.Q(ve)
	qi := cp.I.Q(vi)
	phiT := 0.0
	if c.thal != nil {
		phiT = c.thal.FluxAt(st)
	}

	s.Ve.Set(st, dt, -(cp.Chans.Leak(ve)+cp.Chans.AMPA(yee, ve)+cp.Chans.GABA(yie, ve))/cp.TauE-cp.KNa.I(ve, na))
	s.Vi.Set(st, dt, -(cp.Chans.Leak(vi)+cp.Chans.AMPA(yei, vi)+cp.Chans.GABA(yii, vi))/cp.TauI)
	s.Na.Set(st, dt, cp.KNa.DNa(na, qe))
	s.Yee.Set(st, dt, xee)
	s.Yei.Set(st, dt, xei)
	s.Yie.Set(st, dt, xie)
	s.Yii.Set(st, dt, xii)
	s.Phi.Set(st, dt, x)

	ge := cp.PspE.Gamma
	s.Xee.SetNoisy(st, dt, cp.PspE.DX(cp.Nee*qe+c.Conn.Te*phiT+c.Input, yee, xee), c.noise.Stage(NoiseEE, st, ge))
	s.Xei.SetNoisy(st, dt, cp.PspE.DX(cp.Nei*qe+c.Conn.Ti*phiT, yei, xei), c.noise.Stage(NoiseEI, st, ge))
	s.Xie.Set(st, dt, cp.PspI.DX(cp.Nie*qi, yie, xie))
	s.Xii.Set(st, dt, cp.PspI.DX(cp.Nii*qi, yii, xii))
	s.X.Set(st, dt, cp.Flux.DX(qe, phi, x))
}

// Combine folds the stages into the new state, adds the final noise
// correction to the noisy inputs and draws the noise for the next step.
func (c *Column) Combine() {
	s := &c.St
	ge := c.Params.PspE.Gamma
	for _, v := range s.Vars() {
		switch v {
		case &s.Xee:
			v.CombineNoisy(c.noise.Final(NoiseEE, ge))
		case &s.Xei:
			v.CombineNoisy(c.noise.Final(NoiseEI, ge))
		default:
			v.Combine()
		}
	}
	c.noise.DrawAll()
}

// Step advances the column alone by one macro-step
func (c *Column) Step() {
	for _, st := range srk.AllStages {
		c.SetStage(st)
	}
	c.Combine()
}

// Vp returns the pyramidal membrane voltage, the EEG proxy
func (c *Column) Vp() float64 { return c.St.Ve.Val() }

// Vi returns the inhibitory membrane voltage
func (c *Column) Vi() float64 { return c.St.Vi.Val() }

// Na returns the pyramidal sodium concentration
func (c *Column) Na() float64 { return c.St.Na.Val() }

// Qe returns the current pyramidal firing rate
func (c *Column) Qe() float64 { return c.Params.E.Q(c.St.Ve.Val()) }

// Flux returns the current axonal flux
func (c *Column) Flux() float64 { return c.St.Phi.Val() }

// VarByName returns the current value of the named state variable
func (c *Column) VarByName(name string) (float64, error) {
	vars := c.St.Vars()
	for i, nm := range VarNames {
		if nm == name {
			return vars[i].Val(), nil
		}
	}
	return 0, fmt.Errorf("cortex: variable %q not found", name)
}
