// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srk

import "github.com/goki/ki/kit"

// Stages are the 4 derivative evaluations within one macro-step.
// Due to 0-based indexing Stage1 has the value 0, which is also the
// slot index of its input.
type Stages int32

//go:generate stringer -type=Stages

var KiT_Stages = kit.Enums.AddEnum(StagesN, kit.NotBitFlag, nil)

func (ev Stages) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Stages) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The stages
const (
	Stage1 Stages = iota
	Stage2
	Stage3
	Stage4
	StagesN
)

// AllStages lists the stages in evaluation order
var AllStages = [StagesN]Stages{Stage1, Stage2, Stage3, Stage4}
