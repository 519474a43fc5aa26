// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package psp provides the second-order synaptic kernel that converts an
// afferent firing rate into a postsynaptic potential state (and likewise a
// firing rate into a long-range axonal flux):
//
//	dy/dt = x
//	dx/dt = gamma^2 * (drive - y) - 2 * gamma * x
//
// i.e., the alpha-function response with rate constant gamma.
package psp

// Params holds the rate constant of one kernel
type Params struct {
	Gamma float64 `def:"0.07" min:"0" desc:"PSP rise rate in ms^-1"`

	Gamma2 float64 `view:"-" json:"-" xml:"-" desc:"Gamma^2, computed in Update"`
}

// Defaults sets the excitatory value
func (pp *Params) Defaults() {
	pp.Gamma = 70.0e-3
	pp.Update()
}

// Update must be called after any changes to parameters
func (pp *Params) Update() {
	pp.Gamma2 = pp.Gamma * pp.Gamma
}

// DX returns the derivative of x for the given drive (in rate units),
// current PSP y and its derivative x.
func (pp *Params) DX(drive, y, x float64) float64 {
	return pp.Gamma2*(drive-y) - 2*pp.Gamma*x
}
