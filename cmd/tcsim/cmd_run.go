// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/emer/emergent/timer"
	"github.com/emer/thalcort/config"
	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/record"
	"github.com/emer/thalcort/store"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation",
		Long: `Run one simulation and print a summary of the recorded observables.

Examples:
  tcsim run --sheet N3 --seconds 60 --out n3.arrow
  tcsim run --config stim.yaml --seed 3 --db runs.db
  tcsim run --stim SemiPeriodic --strength 60 --out stim.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("out") {
				cf.Record.Out, _ = fs.GetString("out")
			}
			if fs.Changed("db") {
				cf.Record.DB, _ = fs.GetString("db")
			}
			if fs.Changed("name") {
				cf.Name, _ = fs.GetString("name")
			}
			lg := logging.NewLogger(cf.Log, cmd.ErrOrStderr())
			return runOne(cmd.Context(), cf, lg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("out", "", "sample file: .arrow for Arrow IPC, CSV otherwise")
	cmd.Flags().String("db", "", "SQLite database that the run is added to")
	cmd.Flags().String("name", "", "run name")
	return cmd
}

// runOne builds and runs one simulation, then writes its outputs
func runOne(ctx context.Context, cf *config.Config, lg *slog.Logger, w io.Writer) error {
	s, err := cf.Build(lg)
	if err != nil {
		return err
	}
	var tmr timer.Time
	tmr.Start()
	err = s.Run(ctx)
	tmr.Stop()
	if err != nil {
		return err
	}
	secs := tmr.TotalSecs()
	fmt.Fprintln(w, "simulation done!")
	fmt.Fprintf(w, "took %g seconds\n", secs)
	if mk := s.Markers(); len(mk) > 0 {
		fmt.Fprintf(w, "%d stimulation events, first at %g s\n", len(mk), mk[0])
	}
	writeSummary(w, s.Rec.Summary())

	if cf.Record.Out != "" {
		if err := s.Rec.Save(cf.Record.Out); err != nil {
			return err
		}
	}
	if cf.Record.DB != "" {
		st, err := store.Open(cf.Record.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		run := storeRun(s, secs)
		if err := st.SaveRun(ctx, run, s.Rec); err != nil {
			return err
		}
		lg.Info("run stored", "db", cf.Record.DB, "id", run.ID)
	}
	return nil
}

// storeRun returns the database record of a finished run
func storeRun(s *config.Sim, secs float64) *store.Run {
	cf := s.Config
	return &store.Run{
		Name:     cf.Name,
		Seed:     cf.Sim.Seed,
		Res:      cf.Sim.Res,
		Onset:    cf.Sim.Onset,
		Duration: cf.Sim.Duration,
		Steps:    cf.Sim.Steps(),
		Stride:   cf.Record.Stride,
		Config:   cf.String(),
		Secs:     secs,
		Markers:  s.Markers(),
	}
}

func writeSummary(w io.Writer, sts []record.ColStats) {
	fmt.Fprintf(w, "%-6s %12s %12s %12s %12s\n", "", "min", "max", "mean", "std")
	for _, cs := range sts {
		fmt.Fprintf(w, "%-6s %12.6g %12.6g %12.6g %12.6g\n", cs.Name, cs.Range.Min, cs.Range.Max, cs.Mean, cs.Std)
	}
}
