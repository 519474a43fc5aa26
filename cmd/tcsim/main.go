// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tcsim runs the thalamocortical model from the command line: single
// runs, parameter sweeps over goroutines and MPI ranks, and the
// effective configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/emer/thalcort/config"
	"github.com/emer/thalcort/stim"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tcsim",
		Short: "Thalamocortical neural mass simulator",
		Long: `tcsim integrates the stochastic thalamocortical neural mass model
(cortical column coupled to a thalamic column) and records the cortical
and thalamic voltages, the thalamic calcium and the h-current activation.

Parameters come from the defaults, the Base sheet, an optional named
sheet (Wake, N2, N3), a YAML config file and finally the flags.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("sheet", "", "named parameter sheet applied on top of Base")
	pf.Float64("seconds", 0, "recorded duration in s (default from config)")
	pf.Float64("onset", 0, "unrecorded onset in s (default from config)")
	pf.Float64("res", 0, "integration steps per second (default from config)")
	pf.Uint64("seed", 0, "base noise seed")
	pf.Float64Slice("cortex", nil, "cortex overrides sigma_e,g_KNa,dphi")
	pf.Float64Slice("thalamus", nil, "thalamus overrides g_h,g_LK")
	pf.Float64Slice("conn", nil, "connectivity N_et,N_er,N_te,N_ti")
	pf.StringArray("set", nil, "named parameter, e.g., thalamus.g_h=0.04 (repeatable)")
	pf.String("stim", "", "stimulation mode: NoStim, SemiPeriodic or PhaseDependent")
	pf.Float64("strength", 0, "stimulation strength in Hz")
	pf.Int("stride", 0, "steps between samples (default from config)")
	pf.String("log", "", "log level: error, warn, info, debug or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSweepCmd(),
		newParamsCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tcsim version %s\n", version)
		},
	}
}

// loadConfig reads the config file, if any, and applies the flags that
// were set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fs := cmd.Flags()
	cf := config.Default()
	if path, _ := fs.GetString("config"); path != "" {
		var err error
		cf, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}
	if fs.Changed("sheet") {
		cf.Sheet, _ = fs.GetString("sheet")
	}
	if fs.Changed("seconds") {
		cf.Sim.Duration, _ = fs.GetFloat64("seconds")
	}
	if fs.Changed("onset") {
		cf.Sim.Onset, _ = fs.GetFloat64("onset")
	}
	if fs.Changed("res") {
		cf.Sim.Res, _ = fs.GetFloat64("res")
	}
	if fs.Changed("seed") {
		cf.Sim.Seed, _ = fs.GetUint64("seed")
	}
	vecs := []struct {
		flag string
		dst  *[]float64
	}{
		{"cortex", &cf.Cortex}, {"thalamus", &cf.Thalamus}, {"conn", &cf.Conn},
	}
	for _, vf := range vecs {
		if fs.Changed(vf.flag) {
			*vf.dst, _ = fs.GetFloat64Slice(vf.flag)
		}
	}
	if fs.Changed("set") {
		sets, _ := fs.GetStringArray("set")
		for _, kv := range sets {
			if err := setNamed(cf, kv); err != nil {
				return nil, err
			}
		}
	}
	if fs.Changed("stim") {
		s, _ := fs.GetString("stim")
		var md stim.Modes
		if err := md.FromString(s); err != nil {
			return nil, fmt.Errorf("--stim: %w", err)
		}
		cf.Stim.Mode = md
	}
	if fs.Changed("strength") {
		cf.Stim.Strength, _ = fs.GetFloat64("strength")
	}
	if fs.Changed("stride") {
		cf.Record.Stride, _ = fs.GetInt("stride")
	}
	if fs.Changed("log") {
		cf.Log, _ = fs.GetString("log")
	}
	cf.Sim.Update()
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// setNamed parses name=value into the named parameters of cf
func setNamed(cf *config.Config, kv string) error {
	name, vs, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("--set %q: want name=value", kv)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(vs), 64)
	if err != nil {
		return fmt.Errorf("--set %q: %w", kv, err)
	}
	if cf.Set == nil {
		cf.Set = map[string]float64{}
	}
	cf.Set[strings.TrimSpace(name)] = val
	return nil
}
