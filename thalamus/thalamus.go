// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thalamus implements the thalamic column of the thalamocortical
neural-mass model: a relay (TC, subscript t) and a reticular (RE,
subscript r) population.  Both carry a T-type calcium current, and the
relay population additionally carries the calcium-regulated h current
that produces spindle waxing and waning.  The relay firing rate is
filtered into the axonal flux phi_t that is sent to the cortex.

Noise and the external stimulation input both enter the cortical
excitatory input x_et of the relay population.
*/
package thalamus

import (
	"fmt"

	"github.com/emer/thalcort/noise"
	"github.com/emer/thalcort/srk"
)

// NoiseET is the noise channel of the relay excitatory input
const NoiseET = 0

// NoiseN is the number of noise channels
const NoiseN = 1

// State are the dynamical variables of the column
type State struct {
	Vt  srk.Var `desc:"relay membrane voltage in mV"`
	Vr  srk.Var `desc:"reticular membrane voltage in mV"`
	Ca  srk.Var `desc:"calcium concentration of the relay population"`
	Yet srk.Var `desc:"PSP from cortex to relay population"`
	Yer srk.Var `desc:"PSP from cortex and relay to reticular population"`
	Yrt srk.Var `desc:"PSP from reticular to relay population"`
	Yrr srk.Var `desc:"PSP from reticular to reticular population"`
	Phi srk.Var `desc:"axonal flux sent to the cortex"`
	Xet srk.Var `desc:"derivative of Yet"`
	Xer srk.Var `desc:"derivative of Yer"`
	Xrt srk.Var `desc:"derivative of Yrt"`
	Xrr srk.Var `desc:"derivative of Yrr"`
	X   srk.Var `desc:"derivative of Phi"`
	HTt srk.Var `desc:"T channel inactivation of the relay population"`
	HTr srk.Var `desc:"T channel inactivation of the reticular population"`
	Mh  srk.Var `desc:"h channel activation"`
	Mh2 srk.Var `desc:"h channel activation with bound messenger protein"`
}

// VarNames are the names of the State variables, in field order
var VarNames = []string{"Vt", "Vr", "Ca", "Yet", "Yer", "Yrt", "Yrr", "Phi", "Xet", "Xer", "Xrt", "Xrr", "X", "HTt", "HTr", "Mh", "Mh2"}

// Vars returns pointers to all variables, in VarNames order
func (st *State) Vars() []*srk.Var {
	return []*srk.Var{&st.Vt, &st.Vr, &st.Ca, &st.Yet, &st.Yer, &st.Yrt, &st.Yrr, &st.Phi,
		&st.Xet, &st.Xer, &st.Xrt, &st.Xrr, &st.X, &st.HTt, &st.HTr, &st.Mh, &st.Mh2}
}

// Column is the thalamic module
type Column struct {
	Params Params   `desc:"column parameters"`
	Conn   srk.Conn `desc:"long-range connectivity -- only Et and Er are used here"`
	Dt     float64  `desc:"integration time step in ms"`
	St     State    `desc:"dynamical state"`
	Input  float64  `desc:"external drive added to the relay excitatory input -- 0 is off"`

	ctx   srk.FluxSource
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
		return nil, fmt.Errorf("thalamus: %w", err)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("thalamus: %w", srk.Invalid("dt", dt, "must be positive"))
	}
	c := &Column{Params: *p, Conn: conn, Dt: dt}
	c.Params.Update()
	c.noise = noise.New(NoiseN, c.Params.Dphi, dt, seed)
	c.InitState()
	return c, nil
}

// InitState sets the initial state: voltages at the leak reversal,
// calcium at rest, all synaptic states and gating variables at 0.
func (c *Column) InitState() {
	for _, v := range c.St.Vars() {
		v.Init(0)
	}
	c.St.Vt.Init(c.Params.Chans.Erev.L)
	c.St.Vr.Init(c.Params.Chans.Erev.L)
	c.St.Ca.Init(c.Params.Ca.Ca0)
}

// Couple sets the cortical flux source.  A nil source means no cortical input.
func (c *Column) Couple(ctx srk.FluxSource) {
	c.ctx = ctx
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
// the stage values.  The cortical flux is read at the same stage.
func (c *Column) SetStage(st srk.Stages) {
	tp := &c.Params
	s := &c.St
	dt := c.Dt

	vt, vr, ca := s.Vt.In(st), s.Vr.In(st), s.Ca.In(st)
	yet, yer, yrt, yrr := s.Yet.In(st), s.Yer.In(st), s.Yrt.In(st), s.Yrr.In(st)
	phi := s.Phi.In(st)
	xet, xer, xrt, xrr, x := s.Xet.In(st), s.Xer.In(st), s.Xrt.In(st), s.Xrr.In(st), s.X.In(st)
	htt, htr, mh, mh2 := s.HTt.In(st), s.HTr.In(st), s.Mh.In(st), s.Mh2.In(st)

	qt := tp.T.Q(vt)
	qr := tp.R.Q(vr)
	phiC := 0.0
	if c.ctx != nil {
		phiC = c.ctx.FluxAt(st)
	}
	itt := tp.TT.I(vt, htt)
	itr := tp.TR.I(vr, htr)
	dmh, dmh2 := tp.H.DM(vt, ca, mh, mh2)

	s.Vt.Set(st, dt, -(tp.Chans.Leak(vt)+tp.Chans.AMPA(yet, vt)+tp.Chans.GABA(yrt, vt))/tp.TauT-(tp.Chans.KLeak(vt)+itt+tp.H.I(vt, mh, mh2)))
	s.Vr.Set(st, dt, -(tp.Chans.Leak(vr)+tp.Chans.AMPA(yer, vr)+tp.Chans.GABA(yrr, vr))/tp.TauR-(tp.Chans.KLeak(vr)+itr))
	s.Ca.Set(st, dt, tp.Ca.DCa(ca, itt))
	s.Yet.Set(st, dt, xet)
	s.Yer.Set(st, dt, xer)
	s.Yrt.Set(st, dt, xrt)
	s.Yrr.Set(st, dt, xrr)
	s.Phi.Set(st, dt, x)

	s.Xet.SetNoisy(st, dt, tp.PspE.DX(c.Conn.Et*phiC+c.Input, yet, xet), c.noise.Stage(NoiseET, st, tp.PspE.Gamma))
	s.Xer.Set(st, dt, tp.PspE.DX(tp.Ntr*qt+c.Conn.Er*phiC, yer, xer))
	s.Xrt.Set(st, dt, tp.PspI.DX(tp.Nrt*qr, yrt, xrt))
	s.Xrr.Set(st, dt, tp.PspI.DX(tp.Nrr*qr, yrr, xrr))
	s.X.Set(st, dt, tp.Flux.DX(qt, phi, x))

	s.HTt.Set(st, dt, tp.TT.DH(vt, htt))
	s.HTr.Set(st, dt, tp.TR.DH(vr, htr))
	s.Mh.Set(st, dt, dmh)
	s.Mh2.Set(st, dt, dmh2)
}

// Combine folds the stages into the new state, adds the final noise
// correction to the noisy input and draws the noise for the next step.
func (c *Column) Combine() {
	s := &c.St
	for _, v := range s.Vars() {
		if v == &s.Xet {
			v.CombineNoisy(c.noise.Final(NoiseET, c.Params.PspE.Gamma))
			continue
		}
		v.Combine()
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

// Vt returns the relay membrane voltage
func (c *Column) Vt() float64 { return c.St.Vt.Val() }

// Vr returns the reticular membrane voltage
func (c *Column) Vr() float64 { return c.St.Vr.Val() }

// Ca returns the relay calcium concentration
func (c *Column) Ca() float64 { return c.St.Ca.Val() }

// ActH returns the effective h activation m_h + g_inc * m_h2
func (c *Column) ActH() float64 { return c.Params.H.Act(c.St.Mh.Val(), c.St.Mh2.Val()) }

// Qt returns the current relay firing rate
func (c *Column) Qt() float64 { return c.Params.T.Q(c.St.Vt.Val()) }

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
	return 0, fmt.Errorf("thalamus: variable %q not found", name)
}
