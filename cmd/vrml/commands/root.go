// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands implements the commands of the vrml tool.
package commands

import (
	"fmt"
	"os"

	"cogentcore.org/vrml/base/logx"
	"cogentcore.org/vrml/config"
	"cogentcore.org/vrml/vrml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// options are the settings shared by all commands.
type options struct {
	configFile string
	verbose    bool
	debug      bool
	quiet      bool

	// cfg is the loaded config, set before any command runs.
	cfg *config.Config
}

// Execute runs the vrml tool with the arguments of the process.
func Execute() error {
	logx.SetDefaultLogger()
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vrml:", err)
		return err
	}
	return nil
}

// NewRootCmd returns the root command of the vrml tool.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "vrml",
		Short: "Load, run and convert VRML worlds",
		Long: `vrml loads worlds written in the YAML scene format, runs their
event cascades for a number of frames and prints what a viewer would draw.

Settings are read from vrml.toml in the current or home directory,
or from the file given with --config.`,
		Version:       vrml.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "the config file")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "print info log messages")
	pf.BoolVar(&o.debug, "vv", false, "print debug log messages")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "print only error log messages")

	root.AddCommand(newRunCmd(o), newWatchCmd(o), newDumpCmd(o), newConfigCmd(o))
	return root
}

// setup loads the config and sets the log level from it, or from the
// verbosity flags when one is given.
func (o *options) setup() error {
	file := o.configFile
	if file == "" {
		file = config.Find()
	}
	o.cfg = config.Defaults()
	if file != "" {
		cfg, err := config.Open(file)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	level := o.cfg.Level()
	if o.verbose || o.debug || o.quiet {
		level = logx.LevelFromFlags(o.debug, o.verbose, o.quiet)
	}
	logx.UserLevel.Set(level)
	return nil
}

// newBrowser returns a browser configured by the config, whose clock
// reads now and whose metrics are registered with the returned registry.
func (o *options) newBrowser(now *float64) (*vrml.Browser, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	m, err := vrml.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	opts := o.cfg.Options()
	opts.Metrics = m
	opts.Clock = func() float64 { return *now }
	return vrml.NewBrowser(opts), reg, nil
}
