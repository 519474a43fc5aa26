// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/emer/thalcort/config"
	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration that a run with the same flags would use.
The output can be saved and passed back with --config.

Examples:
  tcsim params --sheet N3 > n3.yaml
  tcsim params --names        # parameters accepted by --set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if names, _ := cmd.Flags().GetBool("names"); names {
				fmt.Fprintln(out, strings.Join(config.ParamNames(), "\n"))
				return nil
			}
			cf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// resolve the parameters so that an invalid combination fails here
			if _, err := cf.Params(); err != nil {
				return err
			}
			return cf.Write(out)
		},
	}
	cmd.Flags().Bool("names", false, "list the named parameters and exit")
	return cmd
}
