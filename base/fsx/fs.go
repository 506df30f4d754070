// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides file system path helpers shared by the
// asset loader and the configuration.
package fsx

import (
	"io/fs"
	"path/filepath"

	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/mitchellh/go-homedir"
)

// Expand returns the absolute form of the given file path, with
// a leading ~ replaced by the home directory of the user.
func Expand(path string) (string, error) {
	exp, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(exp)
}

// ResolveFrom returns the given path expanded with [Expand], relative
// to the given directory if it is relative and the directory is not empty.
func ResolveFrom(dir, path string) (string, error) {
	exp, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	if dir != "" && !filepath.IsAbs(exp) {
		exp = filepath.Join(dir, exp)
	}
	return filepath.Abs(exp)
}

// FileExistsFS checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	if fsys, ok := fsys.(fs.StatFS); ok {
		fileInfo, err := fsys.Stat(filePath)
		if err == nil {
			return !fileInfo.IsDir(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	fp, err := fsys.Open(filePath)
	if err == nil {
		fp.Close()
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
