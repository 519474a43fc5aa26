// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim provides the stimulation protocols that switch the external
input of one column on and off, based on simulated time (semi-periodic)
or on the cortical voltage (phase-dependent, closed loop).

All durations are given in physical units (ms or s) and converted to
integration steps once, in New.  The Controller is checked once after
every macro-step with the index of that step.
*/
package stim

import (
	"fmt"
	"math"

	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/tc"
	"golang.org/x/exp/rand"
)

// Params are the stimulation protocol parameters
type Params struct {
	Mode        Modes   `yaml:"mode" desc:"stimulation protocol"`
	Target      string  `yaml:"target" def:"thalamus" desc:"column that receives the input: thalamus or cortex"`
	Strength    float64 `yaml:"strength" def:"0" min:"0" desc:"input strength in Hz (s^-1)"`
	Duration    float64 `yaml:"duration" def:"120" min:"0" desc:"duration of one stimulus in ms"`
	ISI         float64 `yaml:"isi" def:"5" min:"0" desc:"interval between stimulation events in s -- for PhaseDependent the pause after an event"`
	ISIRange    float64 `yaml:"isi_range" def:"1" min:"0" desc:"SemiPeriodic: the interval is drawn uniformly from [ISI - ISIRange, ISI + ISIRange] -- 0 gives a fixed interval, otherwise it must be below ISI"`
	NStim       int     `yaml:"n_stim" def:"1" min:"1" desc:"number of stimuli per event"`
	TimeBetween float64 `yaml:"time_between" def:"1050" min:"0" desc:"time between the stimuli of one event in ms"`
	TimeToStim  float64 `yaml:"time_to_stim" def:"350" min:"0" desc:"PhaseDependent: delay from the detected minimum to the first stimulus in ms"`
	Threshold   float64 `yaml:"threshold" def:"-68" desc:"PhaseDependent: cortical voltage in mV that must be crossed before a minimum is searched"`
	Burst       bool    `yaml:"burst" desc:"deliver each stimulus as a train of short bursts"`
	BurstOn     float64 `yaml:"burst_on" def:"2" min:"0" desc:"burst length in ms"`
	BurstOff    float64 `yaml:"burst_off" def:"28" min:"0" desc:"silence between bursts in ms"`
}

// Defaults sets the standard values
func (sp *Params) Defaults() {
	sp.Mode = NoStim
	sp.Target = "thalamus"
	sp.Strength = 0
	sp.Duration = 120
	sp.ISI = 5
	sp.ISIRange = 1
	sp.NStim = 1
	sp.TimeBetween = 1050
	sp.TimeToStim = 350
	sp.Threshold = -68
	sp.Burst = false
	sp.BurstOn = 2
	sp.BurstOff = 28
}

// Validate returns an ErrInvalidParam wrapping error for unusable values
func (sp *Params) Validate() error {
	if sp.Mode < NoStim || sp.Mode >= ModesN {
		return fmt.Errorf("stim: mode %d: %w", sp.Mode, srk.ErrInvalidParam)
	}
	nonneg := []struct {
		name string
		val  float64
	}{
		{"strength", sp.Strength}, {"duration", sp.Duration}, {"ISI", sp.ISI},
		{"ISI_range", sp.ISIRange}, {"time_between_stimuli", sp.TimeBetween},
		{"time_to_stimuli", sp.TimeToStim},
	}
	for _, p := range nonneg {
		if !(p.val >= 0) {
			return fmt.Errorf("stim: %w", srk.Invalid(p.name, p.val, "must be non-negative"))
		}
	}
	if sp.ISIRange > 0 && sp.ISIRange >= sp.ISI {
		return fmt.Errorf("stim: %w", srk.Invalid("ISI_range", sp.ISIRange, "must be below ISI"))
	}
	if sp.NStim < 1 {
		return fmt.Errorf("stim: %w", srk.Invalid("number_of_stimuli", float64(sp.NStim), "must be at least 1"))
	}
	return nil
}

// Controller runs one stimulation protocol against one input
type Controller struct {
	Params Params `desc:"protocol parameters"`

	// Markers are the step indexes, relative to the onset, at which
	// stimulation events started
	Markers []int

	strength   float64
	duration   int
	isi        int
	isiRange   int
	between    int
	toStim     int
	burstOn    int
	burstOff   int
	onset      int
	nextStim   int
	started    bool
	crossed    bool
	minFound   bool
	paused     bool
	burstStart bool
	countStim  int
	countBurst int
	countDur   int
	countStart int
	countPause int
	vpOld      float64

	target srk.InputSetter
	rnd    *rand.Rand
}

// New returns a controller for res steps per second and an unrecorded
// onset of onsetSteps steps.  The interval jitter is drawn from its own
// generator seeded with seed.
func New(p *Params, res float64, onsetSteps int, target srk.InputSetter, seed uint64) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if target == nil && p.Mode != NoStim {
		return nil, fmt.Errorf("stim: no input target for mode %v: %w", p.Mode, srk.ErrInvalidParam)
	}
	sc := &Controller{Params: *p, target: target, onset: onsetSteps}
	ms := func(v float64) int { return int(math.Round(v * res / 1.0e3)) }
	sec := func(v float64) int { return int(math.Round(v * res)) }
	sc.strength = p.Strength / 1.0e3
	sc.duration = ms(p.Duration)
	sc.isi = sec(p.ISI)
	sc.isiRange = sec(p.ISIRange)
	sc.between = ms(p.TimeBetween)
	sc.burstOn = ms(p.BurstOn)
	sc.burstOff = ms(p.BurstOff)
	if p.Burst && (sc.burstOn < 1 || sc.burstOff < 1) {
		return nil, fmt.Errorf("stim: %w", srk.Invalid("burst", p.BurstOn, "burst on and off times must be at least one step"))
	}
	if p.Mode != NoStim && p.NStim > 1 && sc.between < 1 {
		return nil, fmt.Errorf("stim: %w", srk.Invalid("time_between_stimuli", p.TimeBetween, "must be at least one step with more than one stimulus"))
	}
	if p.Mode == SemiPeriodic {
		// a zero interval would schedule the next event on the current step
		if sc.isi-sc.isiRange < 1 {
			return nil, fmt.Errorf("stim: %w", srk.Invalid("ISI", p.ISI, "shortest interval must be at least one step"))
		}
		sc.nextStim = onsetSteps + sec(1)
	} else {
		sc.toStim = ms(p.TimeToStim)
	}
	sc.rnd = rand.New(rand.NewSource(seed))
	sc.Reset()
	return sc, nil
}

// Reset clears the protocol state and the markers, keeping the schedule
// of the next semi-periodic stimulus.
func (sc *Controller) Reset() {
	sc.Markers = sc.Markers[:0]
	sc.started, sc.crossed, sc.minFound, sc.paused = false, false, false, false
	sc.burstStart = true
	sc.countStim = 1
	sc.countBurst, sc.countDur, sc.countStart, sc.countPause = 0, 0, 0, 0
	sc.vpOld = 0
}

// Active returns whether a stimulus is currently in progress
func (sc *Controller) Active() bool {
	return sc.started
}

// Strength returns the input strength in ms^-1
func (sc *Controller) Strength() float64 {
	return sc.strength
}

// NextISI returns the steps until the next semi-periodic event
func (sc *Controller) NextISI() int {
	if sc.isiRange == 0 {
		return sc.isi
	}
	return sc.isi - sc.isiRange + sc.rnd.Intn(2*sc.isiRange+1)
}

func (sc *Controller) stimOn(step int) {
	sc.started = true
	sc.target.SetInput(sc.strength)
	if sc.countStim == 1 {
		sc.Markers = append(sc.Markers, step-sc.onset)
	}
}

// Check updates the protocol after macro-step index step (0-based) has
// completed, with vp the current cortical pyramidal voltage.
func (sc *Controller) Check(step int, vp float64) {
	switch sc.Params.Mode {
	case SemiPeriodic:
		if step == sc.nextStim {
			sc.stimOn(step)
			if sc.countStim < sc.Params.NStim {
				sc.nextStim += sc.between
				sc.countStim++
			} else {
				sc.nextStim += sc.NextISI()
				sc.countStim = 1
			}
		}
	case PhaseDependent:
		if !sc.started && !sc.minFound && !sc.crossed && !sc.paused && step > sc.onset {
			if vp <= sc.Params.Threshold {
				sc.crossed = true
			}
		}
		if sc.crossed {
			if vp > sc.vpOld {
				sc.crossed = false
				sc.minFound = true
				sc.vpOld = 0
			} else {
				sc.vpOld = vp
			}
		}
		if sc.minFound {
			fire := sc.countStart == sc.toStim+(sc.countStim-1)*sc.between
			sc.countStart++
			if fire {
				sc.stimOn(step)
				if sc.countStim < sc.Params.NStim {
					sc.countStim++
				} else {
					sc.minFound = false
					sc.paused = true
					sc.countStart = 0
					sc.countStim = 1
				}
			}
		}
	}

	if sc.started {
		sc.countDur++
		sc.countBurst++
		if sc.countDur > sc.duration {
			sc.started = false
			sc.burstStart = true
			sc.countDur = 0
			sc.countBurst = 0
			sc.target.SetInput(0)
		} else if sc.Params.Burst {
			if sc.burstStart {
				if sc.countBurst%sc.burstOn == 0 {
					sc.countBurst = 0
					sc.burstStart = false
					sc.target.SetInput(0)
				}
			} else if sc.countBurst%sc.burstOff == 0 {
				sc.countBurst = 0
				sc.burstStart = true
				sc.target.SetInput(sc.strength)
			}
		}
	}

	if sc.paused {
		sc.countPause++
		if sc.countPause > sc.isi {
			sc.paused = false
			sc.countPause = 0
		}
	}
}

// StepFunc returns the function that checks the protocol after every
// macro-step of a model run.
func (sc *Controller) StepFunc() tc.StepFunc {
	return func(m *tc.Model) error {
		sc.Check(m.StepTot()-1, m.Vp())
		return nil
	}
}

// MarkerTimes returns the markers in seconds after the onset
func (sc *Controller) MarkerTimes(res float64) []float64 {
	ts := make([]float64, len(sc.Markers))
	for i, mk := range sc.Markers {
		ts[i] = float64(mk) / res
	}
	return ts
}
