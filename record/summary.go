// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"github.com/emer/etable/minmax"
	"gonum.org/v1/gonum/stat"
)

// ColStats summarizes one recorded column
type ColStats struct {
	Name  string
	Range minmax.F64
	Mean  float64
	Std   float64
}

// Summary returns the statistics of every observable column (Time excluded)
func (rc *Recorder) Summary() []ColStats {
	sts := make([]ColStats, 0, len(Columns)-1)
	for i, cn := range Columns[1:] {
		vals := rc.vals[i+1][:rc.Row]
		cs := ColStats{Name: cn}
		cs.Range.SetInfinity()
		for _, v := range vals {
			cs.Range.FitValInRange(v)
		}
		switch {
		case len(vals) > 1:
			cs.Mean, cs.Std = stat.MeanStdDev(vals, nil)
		case len(vals) == 1:
			cs.Mean = vals[0]
		}
		sts = append(sts, cs)
	}
	return sts
}
