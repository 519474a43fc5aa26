// Copyright (c) 2020, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package glong provides the long time-scale, voltage-gated conductances of
the thalamic populations, following Destexhe et al. (1993, 1996) and
Chen et al. (2012):

* T-type calcium current (I_T) with instantaneous activation m_inf_T(V)
and slowly relaxing inactivation h_T, for relay (TC) and reticular (RE)
populations, which differ in their gating curves.

* Anomalous rectifier h-current (I_h) of relay cells, whose activation
m_h is up-regulated by calcium binding onto a messenger protein
(bound fraction m_h2).

* Calcium concentration of the relay population, driven by I_T.

All functions are pure: they take the stage input values and return
currents or derivatives.
*/
package glong
