// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package config holds the complete configuration of a simulation run and
builds the run from it.

Parameters are resolved in this order: package defaults, the Base sheet,
the selected named sheet, the flat override vectors (cortex, thalamus,
conn) and finally the named parameters in Set.  A configuration can be
read from and written to YAML.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emer/thalcort/logging"
	"github.com/emer/thalcort/srk"
	"github.com/emer/thalcort/stim"
	"github.com/emer/thalcort/tc"
	"gopkg.in/yaml.v3"
)

// Record configures sampling and output of a run
type Record struct {
	Stride int    `yaml:"stride" desc:"steps between samples"`
	Out    string `yaml:"out,omitempty" desc:"sample file, .arrow for Arrow IPC, CSV otherwise"`
	DB     string `yaml:"db,omitempty" desc:"SQLite run database"`
}

// Config is the configuration of a simulation run
type Config struct {
	Name     string             `yaml:"name,omitempty"`
	Sim      tc.Config          `yaml:"sim"`
	Sheet    string             `yaml:"sheet,omitempty" desc:"named parameter sheet applied on top of Base"`
	Cortex   []float64          `yaml:"cortex,flow,omitempty" desc:"cortex overrides [sigma_e, g_KNa, dphi]"`
	Thalamus []float64          `yaml:"thalamus,flow,omitempty" desc:"thalamus overrides [g_h, g_LK]"`
	Conn     []float64          `yaml:"conn,flow,omitempty" desc:"connectivity [N_et, N_er, N_te, N_ti]"`
	Set      map[string]float64 `yaml:"set,omitempty" desc:"named parameters, e.g., thalamus.g_h"`
	Stim     stim.Params        `yaml:"stim"`
	Record   Record             `yaml:"record"`
	Log      string             `yaml:"log" desc:"log level: error, warn, info, debug or trace"`
}

// Default returns the default configuration
func Default() *Config {
	cf := &Config{Name: "tc", Log: "info"}
	cf.Sim.Defaults()
	cf.Stim.Defaults()
	cf.Record.Stride = 100
	return cf
}

// Load reads a YAML configuration on top of the defaults.  Unknown keys
// are an error.
func Load(r io.Reader) (*Config, error) {
	cf := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	cf.Sim.Update()
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// LoadFile reads the YAML configuration file at path
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Clone returns a deep copy
func (cf *Config) Clone() *Config {
	cp := *cf
	cp.Cortex = append([]float64(nil), cf.Cortex...)
	cp.Thalamus = append([]float64(nil), cf.Thalamus...)
	cp.Conn = append([]float64(nil), cf.Conn...)
	if cf.Set != nil {
		cp.Set = make(map[string]float64, len(cf.Set))
		for k, v := range cf.Set {
			cp.Set[k] = v
		}
	}
	return &cp
}

// Write writes the configuration as YAML
func (cf *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cf); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return enc.Close()
}

// String returns the YAML form of the configuration
func (cf *Config) String() string {
	var b bytes.Buffer
	cf.Write(&b)
	return b.String()
}

// Validate checks the configuration without building the parameters
func (cf *Config) Validate() error {
	if err := cf.Sim.Validate(); err != nil {
		return err
	}
	if err := cf.Stim.Validate(); err != nil {
		return err
	}
	if cf.Record.Stride < 1 {
		return fmt.Errorf("config: %w", srk.Invalid("stride", float64(cf.Record.Stride), "must be at least 1"))
	}
	if cf.Sheet != "" {
		if _, has := Sheets[cf.Sheet]; !has {
			return fmt.Errorf("config: sheet %q not found: %w", cf.Sheet, srk.ErrInvalidParam)
		}
	}
	if !logging.ValidLevel(cf.Log) {
		return fmt.Errorf("config: log level %q: %w", cf.Log, srk.ErrInvalidParam)
	}
	return nil
}
