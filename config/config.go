// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the vrml tool,
// which is read from a TOML file.
package config

import (
	"io"
	"log/slog"
	"os"
	"slices"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/base/fsx"
	"cogentcore.org/vrml/base/logx"
	"cogentcore.org/vrml/fetch"
	"cogentcore.org/vrml/vrml"
	"cogentcore.org/vrml/yamlscene"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
)

// File is the name of the config file looked for in the
// current directory and the home directory.
const File = "vrml.toml"

// Config is the configuration of the vrml tool.
type Config struct {

	// the level of log messages: debug, info, warn or error
	LogLevel string

	// the maximum number of events in the event queue;
	// the oldest event is discarded when it is full
	EventQueueCapacity int

	// the avatar size used when no NavigationInfo is bound
	AvatarSize []float32

	// the visibility limit used when no NavigationInfo is bound;
	// 0 means infinite
	VisibilityLimit float32

	// whether the headlight is on when no NavigationInfo is bound
	Headlight bool

	// the navigation speed used when no NavigationInfo is bound
	Speed float32

	// the directories searched for relative world urls; ~ is expanded
	SearchPaths []string

	// whether the run command reloads the world when its file changes
	Watch bool

	// the number of frames the run command updates and renders
	Frames int

	// the time between frames of the run command, in seconds
	FrameInterval float64
}

// Defaults returns the default configuration.
func Defaults() *Config {
	nav := vrml.DefaultNavigation()
	return &Config{
		LogLevel:           "warn",
		EventQueueCapacity: 400,
		AvatarSize:         nav.AvatarSize,
		VisibilityLimit:    nav.VisibilityLimit,
		Headlight:          nav.Headlight,
		Speed:              nav.Speed,
		SearchPaths:        []string{"."},
		Frames:             1,
		FrameInterval:      1.0 / 60,
	}
}

// Open returns the [Defaults] overridden by the settings in the given
// TOML file. Unknown settings are an error.
func Open(file string) (*Config, error) {
	c := Defaults()
	f, err := os.Open(fsx.ExpandHome(file))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := c.Read(f); err != nil {
		return nil, errors.Errorf("config: %s: %w", file, err)
	}
	slog.Debug("vrml: opened config", "file", file)
	return c, nil
}

// Find returns the config file in the current directory or the home
// directory, or "" if there is none.
func Find() string {
	files := fsx.FindFilesOnPaths([]string{".", "~"}, File)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// Read overrides the settings of c with those read from r.
func (c *Config) Read(r io.Reader) error {
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(c)
	if err != nil {
		return err
	}
	for i, p := range c.SearchPaths {
		c.SearchPaths[i] = fsx.ExpandHome(p)
	}
	return nil
}

// Write writes c to w as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cc := &Config{}
	errors.Log(copier.CopyWithOption(cc, c, copier.Option{DeepCopy: true}))
	return cc
}

// Level returns the log level of c, or warn if it is not valid.
func (c *Config) Level() slog.Level {
	lv, err := logx.LevelFromString(c.LogLevel)
	if err != nil {
		errors.Log(err)
		return slog.LevelWarn
	}
	return lv
}

// Options returns the browser options for c, which read worlds in
// the YAML scene format from local files.
func (c *Config) Options() vrml.Options {
	return vrml.Options{
		Parser:             yamlscene.Parser{},
		Fetcher:            &fetch.FileFetcher{SearchPaths: slices.Clone(c.SearchPaths)},
		EventQueueCapacity: c.EventQueueCapacity,
		Navigation: vrml.NavigationDefaults{
			AvatarSize:      slices.Clone(c.AvatarSize),
			Headlight:       c.Headlight,
			Speed:           c.Speed,
			VisibilityLimit: c.VisibilityLimit,
		},
	}
}
