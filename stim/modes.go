// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "github.com/goki/ki/kit"

// Modes are the stimulation protocols
type Modes int32

//go:generate stringer -type=Modes

var KiT_Modes = kit.Enums.AddEnum(ModesN, kit.NotBitFlag, nil)

func (ev Modes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Modes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// MarshalYAML writes the mode by name
func (ev Modes) MarshalYAML() (any, error) { return ev.String(), nil }

// UnmarshalYAML reads the mode by name
func (ev *Modes) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return ev.FromString(s)
}

// The stimulation protocols
const (
	// NoStim never switches the input on
	NoStim Modes = iota

	// SemiPeriodic stimulates with a fixed or uniformly jittered
	// interval, starting 1 s after the onset
	SemiPeriodic

	// PhaseDependent stimulates a fixed delay after the cortical voltage
	// reached a minimum below a threshold, i.e., during a down state
	PhaseDependent

	ModesN
)
