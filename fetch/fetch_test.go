// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch_test

import (
	"compress/gzip"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/fetch"
	"cogentcore.org/vrml/vrml"
)

var _ vrml.Fetcher = (*fetch.FileFetcher)(nil)

func read(t *testing.T, res *vrml.Resource) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	return string(b)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: []\n"), 0666))

	f := &fetch.FileFetcher{}
	res, err := f.Fetch(path + "#Entry")
	require.NoError(t, err)
	assert.Equal(t, "application/yaml", res.ContentType)
	assert.Equal(t, "nodes: []\n", read(t, res))

	u := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
	assert.Equal(t, u, res.URI)
	res, err = f.Fetch(u)
	require.NoError(t, err)
	assert.Equal(t, "nodes: []\n", read(t, res))
}

func TestFetchGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.wrz")
	file, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(file)
	_, err = zw.Write([]byte("#VRML V2.0 utf8\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())

	res, err := (&fetch.FileFetcher{}).Fetch(path)
	require.NoError(t, err)
	assert.Equal(t, "model/vrml", res.ContentType)
	assert.Equal(t, "#VRML V2.0 utf8\n", read(t, res))
}

func TestFetchSearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib-world.wrl"), []byte("x"), 0666))
	f := &fetch.FileFetcher{SearchPaths: []string{t.TempDir(), dir}}
	res, err := f.Fetch("lib-world.wrl")
	require.NoError(t, err)
	assert.Equal(t, "model/vrml", res.ContentType)
	assert.Equal(t, "x", read(t, res))
}

func TestFetchErrors(t *testing.T) {
	f := &fetch.FileFetcher{}
	_, err := f.Fetch("http://example.com/world.wrl")
	assert.ErrorIs(t, err, fetch.ErrUnsupportedScheme)
	_, err = f.Fetch(filepath.Join(t.TempDir(), "missing.wrl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
