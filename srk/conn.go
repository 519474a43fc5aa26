// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srk

import (
	"errors"
	"fmt"
)

// ErrInvalidParam is returned (wrapped) for any parameter that would make
// the equations ill-defined, such as a non-positive time constant.
var ErrInvalidParam = errors.New("invalid parameter")

// Invalid returns an ErrInvalidParam wrapping error for parameter name
func Invalid(name string, val float64, why string) error {
	return fmt.Errorf("%s = %g: %s: %w", name, val, why, ErrInvalidParam)
}

// Conn holds the long-range connectivity shared by the two modules.
// As a flat vector it is ordered [Et, Er, Te, Ti].
type Conn struct {
	Et float64 `def:"2.6" min:"0" desc:"cortex to thalamic relay"`
	Er float64 `def:"2.6" min:"0" desc:"cortex to thalamic reticular"`
	Te float64 `def:"2.5" min:"0" desc:"thalamus to cortical pyramidal"`
	Ti float64 `def:"2.5" min:"0" desc:"thalamus to cortical inhibitory"`
}

// ConnN is the length of the flat connectivity vector
const ConnN = 4

// Defaults sets the standard connectivity
func (cn *Conn) Defaults() {
	cn.Et, cn.Er, cn.Te, cn.Ti = 2.6, 2.6, 2.5, 2.5
}

// SetFromSlice sets the connectivity from a flat vector [Et, Er, Te, Ti]
func (cn *Conn) SetFromSlice(v []float64) error {
	if len(v) != ConnN {
		return fmt.Errorf("connectivity vector has %d values, want %d: %w", len(v), ConnN, ErrInvalidParam)
	}
	cn.Et, cn.Er, cn.Te, cn.Ti = v[0], v[1], v[2], v[3]
	return cn.Validate()
}

// Slice returns the flat vector form
func (cn *Conn) Slice() []float64 {
	return []float64{cn.Et, cn.Er, cn.Te, cn.Ti}
}

// Validate checks that all strengths are non-negative
func (cn *Conn) Validate() error {
	names := [ConnN]string{"N_et", "N_er", "N_te", "N_ti"}
	for i, v := range cn.Slice() {
		if v < 0 || v != v {
			return Invalid(names[i], v, "connectivity must be non-negative")
		}
	}
	return nil
}

// Zero removes all coupling
func (cn *Conn) Zero() {
	*cn = Conn{}
}
