// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/vrml/config"
	"cogentcore.org/vrml/fetch"
	"cogentcore.org/vrml/vrml"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	file := filepath.Join(t.TempDir(), config.File)
	require.NoError(t, os.WriteFile(file, []byte(text), 0o644))
	return file
}

func TestDefaults(t *testing.T) {
	c := config.Defaults()
	assert.Equal(t, 400, c.EventQueueCapacity)
	assert.Equal(t, []float32{0.25, 1.6, 0.75}, c.AvatarSize)
	assert.True(t, c.Headlight)
	assert.Equal(t, float32(1), c.Speed)
	assert.Equal(t, slog.LevelWarn, c.Level())
}

func TestOpen(t *testing.T) {
	file := writeConfig(t, `
LogLevel = "debug"
EventQueueCapacity = 16
Headlight = false
SearchPaths = ["~/worlds", "/tmp"]
Frames = 10
`)
	c, err := config.Open(file)
	require.NoError(t, err)
	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, c.Level())
	assert.Equal(t, 16, c.EventQueueCapacity)
	assert.False(t, c.Headlight)
	assert.Equal(t, []string{filepath.Join(home, "worlds"), "/tmp"}, c.SearchPaths)
	assert.Equal(t, 10, c.Frames)
	assert.Equal(t, float32(1), c.Speed, "unset settings keep their defaults")
}

func TestOpenErrors(t *testing.T) {
	_, err := config.Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Open(writeConfig(t, `Colour = "red"`))
	assert.Error(t, err)

	_, err = config.Open(writeConfig(t, `Frames = "many"`))
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	c := config.Defaults()
	c.Speed = 2.5
	c.Watch = true
	var b bytes.Buffer
	require.NoError(t, c.Write(&b))
	assert.Contains(t, b.String(), "Speed = 2.5")

	r := config.Defaults()
	require.NoError(t, r.Read(&b))
	assert.Equal(t, c, r)
}

func TestClone(t *testing.T) {
	c := config.Defaults()
	cc := c.Clone()
	assert.Equal(t, c, cc)
	cc.AvatarSize[0] = 1
	cc.SearchPaths[0] = "elsewhere"
	assert.Equal(t, float32(0.25), c.AvatarSize[0])
	assert.Equal(t, ".", c.SearchPaths[0])
}

func TestLevel(t *testing.T) {
	c := config.Defaults()
	c.LogLevel = "loud"
	assert.Equal(t, slog.LevelWarn, c.Level())
}

func TestOptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world.yaml"), []byte(`
nodes:
  - type: NavigationInfo
    def: Nav
    fields:
      speed: 3
`), 0o644))
	c := config.Defaults()
	c.SearchPaths = []string{dir}
	c.Headlight = false
	opts := c.Options()
	assert.Equal(t, []string{dir}, opts.Fetcher.(*fetch.FileFetcher).SearchPaths)

	b := vrml.NewBrowser(opts)
	assert.False(t, b.HeadlightOn())
	require.NoError(t, b.Load([]string{"world.yaml"}, nil))
	assert.Equal(t, float32(3), b.CurrentSpeed())
	assert.True(t, b.HeadlightOn(), "the bound NavigationInfo has headlight on")
}
