// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"cogentcore.org/vrml/yamlscene"
	"github.com/spf13/cobra"
)

func newDumpCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <url>...",
		Short: "Print the scene graph of a world in the YAML scene format",
		Long: `Load the world and print its nodes and routes in the YAML scene
format. PROTO instances are printed as instances of their PROTO, and
fields that have their default values are left out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var now float64
			b, _, err := o.newBrowser(&now)
			if err != nil {
				return err
			}
			defer b.Close()
			if err := b.Load(args, nil); err != nil {
				return err
			}
			return yamlscene.Dump(cmd.OutOrStdout(), b.RootNodes())
		},
	}
}
