// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package noise provides the colored-noise source for the stochastic
Runge-Kutta scheme.  Each noise-bearing channel owns two independent,
explicitly seeded Gaussian generators, with standard deviations
sqrt(Diffusion * dt) and sqrt(dt) respectively.  Both draws are made one
macro-step ahead: the pair used during step n was drawn at the end of
step n-1 (or at construction for the first step).

The raw draws are never used directly.  During stage k they enter as

	gamma^2 * (d0 + d1/sqrt(3)) * B[k-1]

and once after the stage combination as

	gamma^2 * (d0 - d1*sqrt(3)) / 4
*/
package noise

import (
	"math"

	"github.com/emer/thalcort/srk"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// seedInc separates the seeds of the generators derived from one base seed
const seedInc = 0x9E3779B97F4A7C15

var sqrt3 = math.Sqrt(3)

// Channel is one noise-bearing input: a pair of generators and the
// current pair of draws.
type Channel struct {

	// current draw with standard deviation sqrt(Diffusion * dt)
	D0 float64

	// current draw with standard deviation sqrt(dt)
	D1 float64

	// a channel with zero diffusion produces no noise at all
	Silent bool

	gen [2]distuv.Normal
}

// Draw redraws both values of the channel
func (ch *Channel) Draw() {
	if ch.Silent {
		ch.D0, ch.D1 = 0, 0
		return
	}
	ch.D0 = ch.gen[0].Rand()
	ch.D1 = ch.gen[1].Rand()
}

// Stage returns the noise contribution for the given stage
func (ch *Channel) Stage(st srk.Stages, gamma float64) float64 {
	return gamma * gamma * (ch.D0 + ch.D1/sqrt3) * srk.B[st]
}

// Final returns the one-time correction added after stage combination
func (ch *Channel) Final(gamma float64) float64 {
	return gamma * gamma * (ch.D0 - ch.D1*sqrt3) / 4
}

// Source holds all the noise channels of one module.
// A Source must never be shared between simulations.
type Source struct {
	Chans []Channel

	// number of completed redraws, excluding the initial draw
	NDraws int
}

// New returns a Source with nchan channels for the given diffusion and
// time step, seeded from seed.  The first pair of draws is made immediately.
func New(nchan int, diffusion, dt float64, seed uint64) *Source {
	ns := &Source{}
	ns.Init(nchan, diffusion, dt, seed)
	return ns
}

// Init configures the channels and draws the values for the first step
func (ns *Source) Init(nchan int, diffusion, dt float64, seed uint64) {
	ns.Chans = make([]Channel, nchan)
	ns.NDraws = 0
	sds := [2]float64{math.Sqrt(diffusion * dt), math.Sqrt(dt)}
	for i := range ns.Chans {
		ch := &ns.Chans[i]
		ch.Silent = diffusion == 0
		for j := range ch.gen {
			s := seed + uint64(2*i+j+1)*seedInc
			ch.gen[j] = distuv.Normal{Mu: 0, Sigma: sds[j], Src: rand.NewSource(s)}
		}
		ch.Draw()
	}
}

// DrawAll redraws every channel.  Called exactly once per completed macro-step.
func (ns *Source) DrawAll() {
	for i := range ns.Chans {
		ns.Chans[i].Draw()
	}
	ns.NDraws++
}

// Stage returns the stage contribution of channel ch
func (ns *Source) Stage(ch int, st srk.Stages, gamma float64) float64 {
	return ns.Chans[ch].Stage(st, gamma)
}

// Final returns the final correction of channel ch
func (ns *Source) Final(ch int, gamma float64) float64 {
	return ns.Chans[ch].Final(gamma)
}

// Draws returns the current pair of draws of channel ch
func (ns *Source) Draws(ch int) (d0, d1 float64) {
	return ns.Chans[ch].D0, ns.Chans[ch].D1
}

// Zero sets all current draws to 0, and silences all channels so that
// later redraws stay 0.  Used for deterministic runs.
func (ns *Source) Zero() {
	for i := range ns.Chans {
		ch := &ns.Chans[i]
		ch.Silent = true
		ch.D0, ch.D1 = 0, 0
	}
}
