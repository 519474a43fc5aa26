// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thalcort is the overall repository for the thalamocortical neural
mass model: a cortical column (pyramidal and inhibitory populations with
sodium-dependent adaptation) coupled to a thalamic column (relay and
reticular populations with T-type calcium and h currents), integrated with
a stochastic Runge-Kutta scheme.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* srk: the integration scheme: 5-slot state variables, stage
reconstruction and combination, connectivity shared by both columns.

* noise: seeded Gaussian noise, drawn once per step and weighted per stage.

* rate, chans, kna, glong, psp: the building blocks of the columns:
firing rates, ohmic currents, adaptation, long time-scale voltage gated
currents and the second-order synaptic kernels.

* cortex, thalamus: the two columns.

* tc: the coupled model, stepping both columns in lockstep.

* stim: open and closed loop stimulation protocols.

* record, store: sampling of the observables into a table with CSV and
Arrow output, and a SQLite database of runs.

* config: YAML configuration and parameter sheets (Wake, N2, N3).

* cmd/tcsim: the command line driver, including parameter sweeps over MPI.

* examples: eqplot tabulates the voltage dependent functions, bench
reports integration throughput.
*/
package thalcort
