// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package srk provides the fixed-coefficient 4-stage stochastic Runge-Kutta
scheme used to integrate the thalamocortical neural-mass equations.

Each state variable is a Var holding 5 slots: slot 0 is the authoritative
value at the start of the macro-step, and slots 1..4 hold the full
intermediate values computed at stages 1..4:

	v[k] = v[0] + A[k-1]*dt*f(v[k-1]) (+ noise for stochastic variables)

so that the input for evaluating stage k is simply v[k-1].  After stage 4
the slots are folded together with the weights W into the new v[0]:

	v[0] = (-3*v[0] + 2*v[1] + 4*v[2] + 2*v[3] + v[4]) / 6

which is identical to the classic RK4 increment accumulation when no noise
is present.  Stochastic variables additionally receive a stage-weighted
noise term (weights B) at each stage, and a one-time correction after
combination (see package noise).
*/
package srk

// A is the stage-fraction vector: stage k writes v[0] + A[k-1]*dt*f.
var A = [StagesN]float64{0.5, 0.5, 1.0, 1.0}

// B is the stage weighting applied to the per-stage noise contribution.
var B = [StagesN]float64{0.75, 0.75, 0.0, 0.0}

// W are the combination weights over the 5 slots of a Var.
var W = [NSlots]float64{-3.0 / 6.0, 2.0 / 6.0, 4.0 / 6.0, 2.0 / 6.0, 1.0 / 6.0}

// NSlots is the number of slots in a Var: the authoritative value plus one per stage.
const NSlots = 5

// Var is a single dynamical variable with its stage history.
// Only slot 0 is meaningful between macro-steps.
type Var [NSlots]float64

// Init sets the authoritative value and clears all stage slots
func (v *Var) Init(x float64) {
	*v = Var{x}
}

// Val returns the authoritative value (slot 0)
func (v *Var) Val() float64 {
	return v[0]
}

// In returns the input value for evaluating the given stage,
// which is the value written by the previous stage (slot 0 for Stage1).
func (v *Var) In(st Stages) float64 {
	return v[st]
}

// Set writes the value for the given stage from the derivative dxdt
// evaluated on the stage inputs.
func (v *Var) Set(st Stages, dt, dxdt float64) {
	v[st+1] = v[0] + A[st]*dt*dxdt
}

// SetNoisy writes the value for the given stage, adding the already
// weighted stage noise contribution n.
func (v *Var) SetNoisy(st Stages, dt, dxdt, n float64) {
	v[st+1] = v[0] + A[st]*dt*dxdt + n
}

// Increment returns the change written by the given stage relative to slot 0.
// Only meaningful before Combine, which overwrites slot 0.
func (v *Var) Increment(st Stages) float64 {
	return v[st+1] - v[0]
}

// Combine folds the stage values into the new authoritative value.
// The stage slots are left as-is and are overwritten by the next step.
func (v *Var) Combine() {
	v[0] = W[0]*v[0] + W[1]*v[1] + W[2]*v[2] + W[3]*v[3] + W[4]*v[4]
}

// CombineNoisy folds the stage values and adds the final noise correction.
func (v *Var) CombineNoisy(corr float64) {
	v.Combine()
	v[0] += corr
}

// StageIn reconstructs the stage input from derivative increments, for the
// equivalent increment-accumulation form of the scheme: stage 1 uses v0,
// stages 2 and 3 use v0 + k/2 of the previous increment, stage 4 uses v0 + k.
// prev is the increment dt*f computed at the previous stage (ignored for Stage1).
func StageIn(v0, prev float64, st Stages) float64 {
	switch st {
	case Stage2, Stage3:
		return v0 + 0.5*prev
	case Stage4:
		return v0 + prev
	default:
		return v0
	}
}

// FluxSource is implemented by a module that publishes a long-range axonal
// flux for its partner.  FluxAt returns the flux as reconstructed for the
// input of the given stage, and must only depend on already completed stages.
type FluxSource interface {
	FluxAt(st Stages) float64
}

// InputSetter is the capability used by stimulation protocols:
// an additive external drive, 0 denotes off.
type InputSetter interface {
	SetInput(strength float64)
}

// Stepper is one module that can be advanced stage by stage.
type Stepper interface {
	// SetStage evaluates the derivatives on the inputs for stage st and
	// writes the stage values of every state variable.
	SetStage(st Stages)

	// Combine folds the stages into the new state and redraws the noise.
	Combine()
}
