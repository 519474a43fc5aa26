// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"math"
	"testing"
)

func TestCurrents(t *testing.T) {
	cp := Params{}
	cp.Defaults()

	type tst struct {
		nm   string
		i    float64
		want float64
	}
	v := -60.0
	tsts := []tst{
		{"AMPA", cp.AMPA(0.5, v), 0.5 * (v - 0)},
		{"GABA", cp.GABA(0.5, v), 0.5 * (v + 70)},
		{"Leak", cp.Leak(v), v + 64},
		{"KLeak", cp.KLeak(v), 0},
		{"AMPA zero psp", cp.AMPA(0, v), 0},
		{"Leak at rest", cp.Leak(cp.Erev.L), 0},
	}
	for _, ts := range tsts {
		if math.Abs(ts.i-ts.want) > 1e-12 {
			t.Errorf("%s: %v, want: %v\n", ts.nm, ts.i, ts.want)
		}
	}
	cp.Gbar.K = 0.02
	if i := cp.KLeak(-70); math.Abs(i-0.6) > 1e-12 {
		t.Errorf("KLeak: %v, want: 0.6\n", i)
	}
}
