// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tc

import (
	"fmt"
	"math"

	"github.com/emer/thalcort/srk"
)

// Config are the simulation constants, passed explicitly to every run
type Config struct {
	Res      float64 `def:"10000" min:"1" desc:"integration steps per second of simulated time"`
	Duration float64 `def:"30" min:"0" desc:"recorded duration in seconds, after the onset"`
	Onset    float64 `def:"20" min:"0" desc:"initial transient in seconds that is simulated but not recorded"`
	Seed     uint64  `desc:"base seed of all noise generators -- equal seeds give identical runs"`

	Dt float64 `view:"-" json:"-" xml:"-" yaml:"-" desc:"integration time step in ms, 1000 / Res, computed in Update"`
}

// Defaults sets the standard values
func (cf *Config) Defaults() {
	cf.Res = 1.0e4
	cf.Duration = 30
	cf.Onset = 20
	cf.Seed = 0
	cf.Update()
}

// Update must be called after any changes to parameters
func (cf *Config) Update() {
	cf.Dt = 1.0e3 / cf.Res
}

// Validate returns an ErrInvalidParam wrapping error for unusable constants
func (cf *Config) Validate() error {
	if !(cf.Res >= 1) || math.IsInf(cf.Res, 0) {
		return fmt.Errorf("config: %w", srk.Invalid("res", cf.Res, "must be at least 1 step per second"))
	}
	if !(cf.Duration >= 0) {
		return fmt.Errorf("config: %w", srk.Invalid("duration", cf.Duration, "must be non-negative"))
	}
	if !(cf.Onset >= 0) {
		return fmt.Errorf("config: %w", srk.Invalid("onset", cf.Onset, "must be non-negative"))
	}
	return nil
}

// Steps returns the total number of macro-steps, onset included
func (cf *Config) Steps() int {
	return int(math.Round((cf.Onset + cf.Duration) * cf.Res))
}

// OnsetSteps returns the number of macro-steps before recording starts
func (cf *Config) OnsetSteps() int {
	return int(math.Round(cf.Onset * cf.Res))
}

// CortexSeed returns the noise seed of the cortical column
func (cf *Config) CortexSeed() uint64 {
	return cf.Seed
}

// ThalamusSeed returns the noise seed of the thalamic column
func (cf *Config) ThalamusSeed() uint64 {
	return cf.Seed + 1
}

// StimSeed returns the seed of the stimulation interval generator
func (cf *Config) StimSeed() uint64 {
	return cf.Seed + 2
}
