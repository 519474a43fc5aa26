// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srk

import (
	"errors"
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

// leakStep takes one noise-free macro-step of dV/dt = -gL*(V-EL)/tau
func leakStep(v *Var, gL, el, tau, dt float64) {
	for _, st := range AllStages {
		vin := v.In(st)
		v.Set(st, dt, -gL*(vin-el)/tau)
	}
	v.Combine()
}

func TestCombineWeights(t *testing.T) {
	sum := 0.0
	for _, w := range W {
		sum += w
	}
	if math.Abs(sum-1) > difTol {
		t.Errorf("combine weights must sum to 1, got: %v\n", sum)
	}
	var v Var
	v.Init(-64)
	for _, st := range AllStages {
		v.Set(st, 0.1, 0)
	}
	v.Combine()
	if math.Abs(v.Val()+64) > difTol {
		t.Errorf("zero derivative must leave value unchanged, got: %v\n", v.Val())
	}
}

func TestLeakDecay(t *testing.T) {
	gL, el, tau := 1.0, -64.0, 30.0
	v0 := -50.0
	dts := []float64{0.1, 0.2, 0.5, 1.0}
	for _, dt := range dts {
		var v Var
		v.Init(v0)
		leakStep(&v, gL, el, tau, dt)
		exact := el + (v0-el)*math.Exp(-gL*dt/tau)
		h := gL * dt / tau
		bound := math.Abs(v0-el) * math.Pow(h, 5) / 100 // local truncation error of RK4 is h^5/120
		dif := math.Abs(v.Val() - exact)
		if dif > bound+difTol {
			t.Errorf("dt: %v, v: %v, exact: %v, dif: %v > bound: %v\n", dt, v.Val(), exact, dif, bound)
		}
	}
}

func TestLeakTrajectory(t *testing.T) {
	gL, el, tau, dt := 1.0, -70.0, 20.0, 0.1
	v0 := -55.0
	var v Var
	v.Init(v0)
	n := 2000
	for i := 0; i < n; i++ {
		leakStep(&v, gL, el, tau, dt)
	}
	exact := el + (v0-el)*math.Exp(-gL*float64(n)*dt/tau)
	if dif := math.Abs(v.Val() - exact); dif > 1.0e-9 {
		t.Errorf("v: %v, exact: %v, dif: %v\n", v.Val(), exact, dif)
	}
}

// the full-value form must match the increment-accumulation form exactly
func TestIncrementEquivalence(t *testing.T) {
	f := func(x float64) float64 { return -0.3*x + math.Sin(x) }
	dt := 0.1
	x0 := 1.3

	var v Var
	v.Init(x0)
	for _, st := range AllStages {
		v.Set(st, dt, f(v.In(st)))
	}
	var incs [StagesN]float64
	for _, st := range AllStages {
		incs[st] = v.Increment(st)
	}
	v.Combine()

	var k [StagesN]float64
	prev := 0.0
	for _, st := range AllStages {
		k[st] = dt * f(StageIn(x0, prev, st))
		prev = k[st]
	}
	inc := x0 + (k[0]+2*k[1]+2*k[2]+k[3])/6

	if dif := math.Abs(v.Val() - inc); dif > difTol {
		t.Errorf("full-value: %v, increment: %v, dif: %v\n", v.Val(), inc, dif)
	}
	for _, st := range AllStages {
		if dif := math.Abs(incs[st] - A[st]*k[st]); dif > difTol {
			t.Errorf("stage: %v increment: %v, want: %v\n", st, incs[st], A[st]*k[st])
		}
	}
}

func TestNoisyCombine(t *testing.T) {
	var v Var
	v.Init(0)
	n := 0.2
	for _, st := range AllStages {
		v.SetNoisy(st, 0.1, 0, n*B[st])
	}
	v.CombineNoisy(0.05)
	// 2*.75n/6 + 4*.75n/6 = .75n
	want := 0.75*n + 0.05
	if dif := math.Abs(v.Val() - want); dif > difTol {
		t.Errorf("noisy combine: %v, want: %v\n", v.Val(), want)
	}
}

func TestStagesString(t *testing.T) {
	for _, st := range AllStages {
		var s Stages
		if err := s.FromString(st.String()); err != nil {
			t.Error(err)
		}
		if s != st {
			t.Errorf("round trip: %v != %v\n", s, st)
		}
	}
	var s Stages
	if err := s.FromString("Stage5"); err == nil {
		t.Errorf("expected error for invalid stage name")
	}
}

func TestConn(t *testing.T) {
	cn := Conn{}
	cn.Defaults()
	if err := cn.Validate(); err != nil {
		t.Error(err)
	}
	if err := cn.SetFromSlice([]float64{1, 2, 3}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("short vector must fail with ErrInvalidParam, got: %v\n", err)
	}
	if err := cn.SetFromSlice([]float64{1, -2, 3, 4}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("negative connectivity must fail with ErrInvalidParam, got: %v\n", err)
	}
	if err := cn.SetFromSlice([]float64{1, 2, 3, 4}); err != nil {
		t.Error(err)
	}
	if cn.Er != 2 || cn.Ti != 4 {
		t.Errorf("wrong order: %+v\n", cn)
	}
}
