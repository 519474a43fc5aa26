// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/thalcort/srk"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

// quietColumn returns a deterministic, uncoupled column without
// intra-cortical connectivity and without adaptation.
func quietColumn(t *testing.T) *Column {
	cp := Params{}
	cp.Defaults()
	cp.Dphi = 0
	cp.KNa.Gbar = 0
	cp.Nee, cp.Nei, cp.Nie, cp.Nii = 0, 0, 0, 0
	conn := srk.Conn{}
	c, err := New(&cp, conn, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRestingState(t *testing.T) {
	c := quietColumn(t)
	c.Step()
	// at the leak reversal with no input nothing drives the voltage
	if dv := math.Abs(c.Vp() + 64); dv > 1.0e-12 {
		t.Errorf("Ve moved from rest by: %v\n", dv)
	}
	if dv := math.Abs(c.Vi() + 64); dv > 1.0e-12 {
		t.Errorf("Vi moved from rest by: %v\n", dv)
	}
	// sodium drifts by the influx from the resting firing rate
	qe := c.Params.E.Q(-64)
	want := 9.5 + 0.1*2*qe/1.7
	if dif := math.Abs(c.Na() - want); dif > 1.0e-6 {
		t.Errorf("Na: %v, want: %v\n", c.Na(), want)
	}
}

// with the voltage held at rest by g_KNa = 0, sodium does not stay at NaEq:
// the resting firing rate keeps an influx that the pump balances only at
// the concentration where AlphaNa * Qe = Pump(Na)
func TestRestingSodium(t *testing.T) {
	c := quietColumn(t)
	kp := &c.Params.KNa
	qe := c.Params.E.Q(-64)
	lo, hi := kp.NaEq, 40.0
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		if kp.DNa(mid, qe) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	fix := 0.5 * (lo + hi)
	if fix < 10.4 || fix > 10.6 {
		t.Errorf("resting sodium fixed point: %v\n", fix)
	}
	for i := 0; i < 100000; i++ {
		c.Step()
	}
	if dv := math.Abs(c.Vp() + 64); dv > 1.0e-9 {
		t.Errorf("Ve moved from rest by: %v\n", dv)
	}
	if dif := math.Abs(c.Na() - fix); dif > 1.0e-6 {
		t.Errorf("Na: %v, want: %v, dif: %v\n", c.Na(), fix, dif)
	}
}

func TestRestingStateCoupled(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.Dphi = 0
	cp.KNa.Gbar = 0
	c, err := New(&cp, srk.Conn{}, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cp.Chans.Leak(-64); d != 0 {
		t.Errorf("leak current at rest: %v\n", d)
	}
	c.Step()
	// recurrent input only reaches the voltage through the PSP kernel,
	// which is second order, so the first step barely moves it
	if dv := math.Abs(c.Vp() + 64); dv > 1.0e-5 {
		t.Errorf("Ve moved too far in one step: %v\n", dv)
	}
}

func TestLeakRelaxation(t *testing.T) {
	c := quietColumn(t)
	v0 := -55.0
	c.St.Ve.Init(v0)
	c.St.Vi.Init(v0)
	n := 3000
	for i := 0; i < n; i++ {
		c.Step()
	}
	tm := float64(n) * c.Dt
	want := -64 + (v0+64)*math.Exp(-tm/30)
	if dif := math.Abs(c.Vp() - want); dif > difTol {
		t.Errorf("Ve: %v, exact: %v, dif: %v\n", c.Vp(), want, dif)
	}
	if dif := math.Abs(c.Vi() - want); dif > difTol {
		t.Errorf("Vi: %v, exact: %v, dif: %v\n", c.Vi(), want, dif)
	}
}

func TestNoiseTiming(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.Nee, cp.Nei, cp.Nie, cp.Nii = 0, 0, 0, 0
	c, err := New(&cp, srk.Conn{}, 0.1, 42)
	if err != nil {
		t.Fatal(err)
	}
	ge := cp.PspE.Gamma
	for step := 0; step < 5; step++ {
		ns := c.Noise()
		pre := ns.Stage(NoiseEE, srk.Stage1, ge)
		d0, d1 := ns.Draws(NoiseEE)
		x0 := c.St.Xee.Val()
		y0 := c.St.Yee.Val()
		c.SetStage(srk.Stage1)
		// stage 1 of x_ee: deterministic part plus the noise drawn before this step
		det := 0.5 * c.Dt * cp.PspE.DX(0, y0, x0)
		if dif := math.Abs(c.St.Xee[1] - (x0 + det + pre)); dif > 1.0e-15 {
			t.Errorf("step %d: stage 1 noise does not match the previous draw: %v\n", step, dif)
		}
		for _, st := range srk.AllStages[1:] {
			c.SetStage(st)
		}
		c.Combine()
		if ns.NDraws != step+1 {
			t.Errorf("draws: %v, want: %v\n", ns.NDraws, step+1)
		}
		n0, n1 := ns.Draws(NoiseEE)
		if n0 == d0 || n1 == d1 {
			t.Errorf("step %d: noise was not redrawn\n", step)
		}
	}
}

func TestDeterministicSeeds(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	conn := srk.Conn{}
	conn.Defaults()
	a, _ := New(&cp, conn, 0.1, 7)
	b, _ := New(&cp, conn, 0.1, 7)
	o, _ := New(&cp, conn, 0.1, 8)
	for i := 0; i < 1000; i++ {
		a.Step()
		b.Step()
		o.Step()
	}
	if a.St != b.St {
		t.Errorf("same seed gave different trajectories: %v %v\n", a.Vp(), b.Vp())
	}
	if a.Vp() == o.Vp() {
		t.Errorf("different seeds gave identical trajectories\n")
	}
	for i, nm := range VarNames {
		v, err := a.VarByName(nm)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("var %d %s: %v %v\n", i, nm, v, err)
		}
	}
}

type constFlux float64

func (cf constFlux) FluxAt(st srk.Stages) float64 { return float64(cf) }

func TestInputAndCoupling(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.Dphi = 0
	conn := srk.Conn{}
	conn.Defaults()
	base, _ := New(&cp, conn, 0.1, 1)
	driven, _ := New(&cp, conn, 0.1, 1)
	driven.SetInput(0.05)
	thal, _ := New(&cp, conn, 0.1, 1)
	thal.Couple(constFlux(0.02))
	for i := 0; i < 100; i++ {
		base.Step()
		driven.Step()
		thal.Step()
	}
	if driven.St.Yee.Val() <= base.St.Yee.Val() {
		t.Errorf("input did not raise the excitatory PSP: %v <= %v\n", driven.St.Yee.Val(), base.St.Yee.Val())
	}
	if thal.St.Yei.Val() <= base.St.Yei.Val() {
		t.Errorf("thalamic flux did not raise the inhibitory population input: %v <= %v\n", thal.St.Yei.Val(), base.St.Yei.Val())
	}
	driven.SetInput(0)
	if driven.Input != 0 {
		t.Errorf("input not reset\n")
	}
}

func TestValidate(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	if err := cp.Validate(); err != nil {
		t.Error(err)
	}
	if err := cp.SetOverrides([]float64{4.5, 1.2, 0}); err != nil {
		t.Error(err)
	}
	if cp.E.Sigma != 4.5 || cp.KNa.Gbar != 1.2 || cp.Dphi != 0 {
		t.Errorf("overrides not applied: %v\n", cp.Overrides())
	}
	if err := cp.SetOverrides([]float64{1, 2, 3, 4}); !errors.Is(err, srk.ErrInvalidParam) {
		t.Errorf("too many overrides must fail, got: %v\n", err)
	}
	if err := cp.SetOverrides([]float64{-4}); !errors.Is(err, srk.ErrInvalidParam) {
		t.Errorf("negative sigma must fail, got: %v\n", err)
	}
	cp.Defaults()
	cp.TauE = 0
	if _, err := New(&cp, srk.Conn{}, 0.1, 1); !errors.Is(err, srk.ErrInvalidParam) {
		t.Errorf("zero tau must fail, got: %v\n", err)
	}
	cp.Defaults()
	if _, err := New(&cp, srk.Conn{}, 0, 1); !errors.Is(err, srk.ErrInvalidParam) {
		t.Errorf("zero dt must fail, got: %v\n", err)
	}
}
