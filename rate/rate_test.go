// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rate

import (
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func TestQ(t *testing.T) {
	rp := Params{}
	rp.Defaults()

	tstv := []float64{-80, -64, -58.5, -50, -30}
	cory := make([]float64, len(tstv))
	for i, v := range tstv {
		cory[i] = 30.0e-3 / (1 + math.Exp(-(math.Pi/math.Sqrt(3))*(v+58.5)/4))
	}
	for i, v := range tstv {
		q := rp.Q(v)
		dif := math.Abs(q - cory[i])
		if dif > difTol {
			t.Errorf("Q err: idx: %v, v: %v, q: %v, cor q: %v, dif: %v\n", i, v, q, cory[i], dif)
		}
	}
	if q := rp.Q(rp.Theta); math.Abs(q-rp.Qmax/2) > difTol {
		t.Errorf("Q at threshold must be Qmax/2: %v\n", q)
	}
}

func TestQBounds(t *testing.T) {
	pops := []Params{}
	for _, pr := range [][3]float64{{30e-3, -58.5, 4}, {60e-3, -58.5, 6}, {400e-3, -58.5, 6}} {
		rp := Params{}
		rp.Set(pr[0], pr[1], pr[2])
		pops = append(pops, rp)
	}
	for _, rp := range pops {
		prv := 0.0
		for v := -150.0; v <= 10; v += 0.25 {
			q := rp.Q(v)
			if !(q > 0 && q < rp.Qmax) {
				t.Errorf("Q out of (0, Qmax): v: %v, q: %v, qmax: %v\n", v, q, rp.Qmax)
			}
			if q <= prv {
				t.Errorf("Q must be increasing: v: %v, q: %v, prv: %v\n", v, q, prv)
			}
			prv = q
		}
		for _, v := range []float64{-1e6, -1e3, 1e3, 1e6, math.MaxFloat64, -math.MaxFloat64} {
			q := rp.Q(v)
			if math.IsNaN(q) || q < 0 || q > rp.Qmax {
				t.Errorf("Q not bounded at extreme v: %v, q: %v\n", v, q)
			}
		}
	}
}

func TestQEndpoints(t *testing.T) {
	rp := Params{}
	rp.Defaults()
	for _, ns := range []float64{-300, -100, -15, 0, 15} {
		v := rp.Theta + ns*rp.Sigma
		if q := rp.Q(v); !(q > 0 && q < rp.Qmax) {
			t.Errorf("Q must be inside (0, Qmax) at %v sigma: %v\n", ns, q)
		}
	}
	if q := rp.Q(rp.Theta + 25*rp.Sigma); q != rp.Qmax {
		t.Errorf("Q should round to Qmax at 25 sigma: %v\n", q)
	}
	if q := rp.Q(rp.Theta - 500*rp.Sigma); q != 0 {
		t.Errorf("Q should underflow to 0 at -500 sigma: %v\n", q)
	}
}
