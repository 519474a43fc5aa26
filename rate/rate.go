// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rate provides the sigmoidal mapping from mean membrane voltage to
mean firing rate used by every population of the neural-mass model:

	Q(V) = Qmax / (1 + exp(-C1 * (V - Theta) / Sigma))

where C1 = pi / sqrt(3) normalizes the slope so that Sigma is the standard
deviation of the firing thresholds across the population.  C1 is a fixed
constant, not a parameter.
*/
package rate

import "math"

// C1 is the sigmoid slope normalization, pi / sqrt(3)
var C1 = math.Pi / math.Sqrt(3)

// Params are the firing-rate function parameters of one population.
type Params struct {
	Qmax  float64 `def:"0.03" min:"0" desc:"maximum firing rate in ms^-1"`
	Theta float64 `def:"-58.5" desc:"firing threshold in mV -- voltage at which the rate is half of Qmax"`
	Sigma float64 `def:"4" min:"0" desc:"gain (spread of thresholds) in mV -- larger values give a shallower sigmoid"`

	Gain float64 `view:"-" json:"-" xml:"-" desc:"C1 / Sigma, computed in Update"`
}

// Defaults sets the cortical pyramidal values
func (rp *Params) Defaults() {
	rp.Set(30.0e-3, -58.5, 4)
}

// Set sets all the values and updates
func (rp *Params) Set(qmax, theta, sigma float64) {
	rp.Qmax, rp.Theta, rp.Sigma = qmax, theta, sigma
	rp.Update()
}

// Update must be called after any changes to parameters
func (rp *Params) Update() {
	rp.Gain = C1 / rp.Sigma
}

// Q returns the firing rate for membrane voltage v.
// The logistic is evaluated in a form that never overflows and is never NaN
// for any finite v.  The result lies in the open interval (0, Qmax); the
// endpoints are reached only through float64 rounding, Qmax once v exceeds
// Theta by about 20 Sigma and 0 by underflow several hundred Sigma below it.
func (rp *Params) Q(v float64) float64 {
	a := rp.Gain * (v - rp.Theta)
	if a >= 0 {
		return rp.Qmax / (1 + math.Exp(-a))
	}
	e := math.Exp(a)
	return rp.Qmax * e / (1 + e)
}
