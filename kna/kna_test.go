// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kna

import (
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func TestPump(t *testing.T) {
	kp := Params{}
	kp.Defaults()
	if p := kp.Pump(kp.NaEq); math.Abs(p) > difTol {
		t.Errorf("pump must vanish at NaEq: %v\n", p)
	}
	if kp.Pump(kp.NaEq+1) <= 0 || kp.Pump(kp.NaEq-1) >= 0 {
		t.Errorf("pump must restore NaEq: %v %v\n", kp.Pump(kp.NaEq+1), kp.Pump(kp.NaEq-1))
	}
	if d := kp.DNa(kp.NaEq, 0); math.Abs(d) > difTol {
		t.Errorf("no firing at NaEq must give zero drive: %v\n", d)
	}
	want := kp.AlphaNa * 0.01 / kp.TauNa
	if d := kp.DNa(kp.NaEq, 0.01); math.Abs(d-want) > difTol {
		t.Errorf("DNa: %v, want: %v\n", d, want)
	}
}

func TestKNa(t *testing.T) {
	kp := Params{}
	kp.Defaults()
	tstna := []float64{5, 9.5, 20, 38.7, 80}
	for _, na := range tstna {
		w := kp.W(na)
		cor := 0.37 / (1 + math.Pow(38.7/na, 3.5))
		if math.Abs(w-cor) > difTol || w <= 0 || w >= 0.37 {
			t.Errorf("W: na: %v, w: %v, cor: %v\n", na, w, cor)
		}
	}
	if w := kp.W(38.7); math.Abs(w-0.185) > difTol {
		t.Errorf("W at half activation: %v\n", w)
	}
	if i := kp.I(kp.EK, 20); i != 0 {
		t.Errorf("KNa current at EK must vanish: %v\n", i)
	}
	kp.Gbar = 0
	if i := kp.I(-64, 20); i != 0 {
		t.Errorf("KNa current with Gbar=0: %v\n", i)
	}
}
