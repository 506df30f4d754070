// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader fetches mesh files for the scene engine from the
// local file system, an [fs.FS] of bundled assets, or over HTTP, and
// watches local files to import them again when they change.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/hepvis/eventdisplay/base/fsx"
)

var (
	// ErrBinary is returned for content that is recognized as a binary
	// format such as an image or an archive, which no mesh decoder reads.
	ErrBinary = errors.New("binary content")

	// ErrNotFound is returned for paths that do not name a file.
	ErrNotFound = errors.New("not found")
)

// DefaultMaxSize is the default maximum size of fetched content.
const DefaultMaxSize = 256 << 20

// Loader fetches mesh files. It implements the Fetcher of the scene
// engine. The zero value reads local files and uses
// [http.DefaultClient] for URLs.
type Loader struct {

	// FS, if set, is used for relative paths, such as an embedded
	// directory of bundled geometries. Other paths use the local files.
	FS fs.FS

	// Dir is the directory relative local paths are resolved from,
	// the working directory if empty.
	Dir string

	// Client is the HTTP client used for URLs.
	Client *http.Client

	// MaxSize is the maximum size of fetched content in bytes,
	// [DefaultMaxSize] if zero.
	MaxSize int64
}

// IsURL returns whether the given path is an http or https URL.
func IsURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Fetch returns the content of the file at the given path or URL.
// Binary content is rejected with [ErrBinary].
func (ld *Loader) Fetch(ctx context.Context, p string) ([]byte, error) {
	var data []byte
	var err error
	switch {
	case IsURL(p):
		data, err = ld.fetchURL(ctx, p)
	case ld.FS != nil && !path.IsAbs(p) && !strings.HasPrefix(p, "~"):
		data, err = ld.readFS(p)
	default:
		data, err = ld.readFile(strings.TrimPrefix(p, "file://"))
	}
	if err != nil {
		return nil, err
	}
	if err := CheckText(data); err != nil {
		return nil, fmt.Errorf("loader.Fetch: %q: %w", p, err)
	}
	slog.Debug("loader.Fetch", "path", p, "bytes", len(data))
	return data, nil
}

// Path returns the local file path that Fetch reads for the given
// path, or "" if it is a URL or is read from the FS.
func (ld *Loader) Path(p string) (string, error) {
	if IsURL(p) || (ld.FS != nil && !path.IsAbs(p) && !strings.HasPrefix(p, "~")) {
		return "", nil
	}
	return fsx.ResolveFrom(ld.Dir, strings.TrimPrefix(p, "file://"))
}

func (ld *Loader) maxSize() int64 {
	if ld.MaxSize > 0 {
		return ld.MaxSize
	}
	return DefaultMaxSize
}

func (ld *Loader) readFile(p string) ([]byte, error) {
	fp, err := fsx.ResolveFrom(ld.Dir, p)
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	f, err := os.Open(fp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loader.Fetch: %q: %w", fp, ErrNotFound)
		}
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	defer f.Close()
	return ld.readAll(f, p)
}

func (ld *Loader) readFS(p string) ([]byte, error) {
	p = path.Clean(p)
	ok, err := fsx.FileExistsFS(ld.FS, p)
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("loader.Fetch: %q: %w", p, ErrNotFound)
	}
	f, err := ld.FS.Open(p)
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	defer f.Close()
	return ld.readAll(f, p)
}

func (ld *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	client := ld.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("loader.Fetch: %q: %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("loader.Fetch: %q: unexpected status %s", url, resp.Status)
	}
	return ld.readAll(resp.Body, url)
}

func (ld *Loader) readAll(r io.Reader, p string) ([]byte, error) {
	max := ld.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("loader.Fetch: reading %q: %w", p, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("loader.Fetch: %q is larger than %d bytes", p, max)
	}
	return data, nil
}

// CheckText returns [ErrBinary] if the given content starts with the
// signature of a known binary file type.
func CheckText(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return err
	}
	if kind != filetype.Unknown {
		return fmt.Errorf("%w: %s", ErrBinary, kind.MIME.Value)
	}
	return nil
}
