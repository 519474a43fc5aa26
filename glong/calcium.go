// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glong

// CaParams control the calcium concentration of the relay population
type CaParams struct {
	Alpha float64 `def:"-51.8e-6" desc:"calcium influx per unit of T current, in nmol -- negative because I_T is inward"`
	Tau   float64 `def:"10" min:"0" desc:"calcium decay time constant in ms"`
	Ca0   float64 `def:"2.4e-4" min:"0" desc:"resting calcium concentration"`
}

// Defaults sets the standard values
func (cp *CaParams) Defaults() {
	cp.Alpha = -51.8e-6
	cp.Tau = 10
	cp.Ca0 = 2.4e-4
}

// DCa returns the calcium derivative for concentration ca and relay T current iT
func (cp *CaParams) DCa(ca, iT float64) float64 {
	return cp.Alpha*iT - (ca-cp.Ca0)/cp.Tau
}
