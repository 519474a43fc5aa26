// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tc

// Time contains all the timing state of a running model
type Time struct {

	// accumulated simulated time in ms
	Time float64

	// step counter within the current second of simulated time
	Step int

	// total step count since the last Reset
	StepTot int

	// whole seconds of simulated time since the last Reset
	Sec int

	// amount of time in ms to increment per step
	TimePerStep float64 `def:"0.1"`

	// number of steps per second of simulated time
	StepsPerSec int `def:"10000"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerStep = 0.1
	tm.StepsPerSec = 10000
}

// SetRes sets the step size for the given number of steps per second
func (tm *Time) SetRes(res float64) {
	tm.StepsPerSec = int(res)
	tm.TimePerStep = 1.0e3 / res
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	tm.StepTot = 0
	tm.Sec = 0
	if tm.StepsPerSec == 0 {
		tm.Defaults()
	}
}

// StepInc increments at the step level, rolling over into Sec
func (tm *Time) StepInc() {
	tm.Step++
	tm.StepTot++
	tm.Time = float64(tm.StepTot) * tm.TimePerStep
	if tm.Step >= tm.StepsPerSec {
		tm.Step = 0
		tm.Sec++
	}
}

// Secs returns the simulated time in seconds
func (tm *Time) Secs() float64 {
	return tm.Time / 1.0e3
}
