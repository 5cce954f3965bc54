// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch provides a [vrml.Fetcher] for local files.
package fetch

import (
	"bufio"
	"compress/gzip"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/base/fsx"
	"cogentcore.org/vrml/vrml"
)

// ErrUnsupportedScheme is returned for URIs that are not local files.
var ErrUnsupportedScheme = errors.New("unsupported URI scheme")

// ContentTypes maps file extensions to the content type reported
// for them.
var ContentTypes = map[string]string{
	".wrl":  "model/vrml",
	".vrml": "model/vrml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// headerSize is the number of bytes needed to detect a file type.
const headerSize = 262

// FileFetcher fetches files named by file: URIs or by paths.
// Compressed files are decompressed transparently.
type FileFetcher struct {

	// SearchPaths are the directories in which relative paths that
	// do not exist relative to the working directory are looked up.
	SearchPaths []string
}

// Fetch opens the file named by uri. The fragment of uri is ignored.
func (f *FileFetcher) Fetch(uri string) (*vrml.Resource, error) {
	path, err := f.path(uri)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	res := &vrml.Resource{
		URI:         (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
		ContentType: ContentTypes[strings.ToLower(filepath.Ext(abs))],
	}
	br := bufio.NewReader(file)
	head, _ := br.Peek(headerSize)
	kind, _ := filetype.Match(head)
	if kind.Extension != "gz" {
		if res.ContentType == "" && kind != filetype.Unknown {
			res.ContentType = kind.MIME.Value
		}
		res.Body = &readCloser{Reader: br, closers: []io.Closer{file}}
		return res, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		file.Close()
		return nil, err
	}
	inner := strings.TrimSuffix(abs, filepath.Ext(abs))
	if ct, ok := ContentTypes[strings.ToLower(filepath.Ext(inner))]; ok {
		res.ContentType = ct
	} else if res.ContentType == "" {
		res.ContentType = ContentTypes[".wrl"]
	}
	slog.Debug("fetch: decompressing", "path", abs)
	res.Body = &readCloser{Reader: zr, closers: []io.Closer{zr, file}}
	return res, nil
}

// path returns the file path named by uri.
func (f *FileFetcher) path(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	var path string
	switch u.Scheme {
	case "":
		path, _, _ = strings.Cut(uri, "#")
	case "file":
		path = u.Path
		if path == "" {
			path = u.Opaque
		}
		path = filepath.FromSlash(path)
	default:
		if len(u.Scheme) == 1 && filepath.VolumeName(uri) != "" {
			path, _, _ = strings.Cut(uri, "#")
			break
		}
		return "", errors.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	path = fsx.ExpandHome(path)
	if filepath.IsAbs(path) {
		return path, nil
	}
	if ok, _ := fsx.FileExists(path); ok {
		return path, nil
	}
	if found := fsx.FindFilesOnPaths(f.SearchPaths, path); len(found) > 0 {
		return found[0], nil
	}
	return path, nil
}

// readCloser closes all of its closers, in order.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
