// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides file system helpers.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"cogentcore.org/vrml/base/errors"
)

// ExpandHome returns path with a leading ~ replaced by the home
// directory. Errors are logged and the path is returned unchanged.
func ExpandHome(path string) string {
	exp, err := homedir.Expand(path)
	if errors.Log(err) != nil {
		return path
	}
	return exp
}

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
// A directory does not count as a file.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindFilesOnPaths returns the paths of the file in each of the given
// directories that has it, in order. Directories starting with ~ are
// expanded.
func FindFilesOnPaths(paths []string, file string) []string {
	var res []string
	for _, dir := range paths {
		fp := filepath.Join(ExpandHome(dir), file)
		if ok, _ := FileExists(fp); ok {
			res = append(res, fp)
		}
	}
	return res
}
