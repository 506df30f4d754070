// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hepvis/eventdisplay/xyz"
)

// watched is a local mesh file watched for changes and the
// import arguments used when it changes.
type watched struct {
	path        string
	name        string
	colour      any
	doubleSided bool
}

// Watcher imports mesh files into an engine again whenever they
// change on disk, replacing the object registered under their name.
type Watcher struct {

	// Engine is the engine the files are imported into.
	Engine *xyz.Engine

	watcher *fsnotify.Watcher
	dirs    map[string]bool

	mu    sync.Mutex
	files map[string]watched
}

// NewWatcher returns a new watcher importing into the given engine.
// Files are only imported when changed; use [xyz.Engine.ImportByPath]
// for the first import.
func NewWatcher(e *xyz.Engine) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("loader.NewWatcher: %w", err)
	}
	return &Watcher{Engine: e, watcher: fw, dirs: map[string]bool{}, files: map[string]watched{}}, nil
}

// Add watches the given local file, importing it under the given name
// with the given colour and sidedness when it changes. The directory
// of the file is watched, so that editors replacing the file by
// renaming are seen.
func (w *Watcher) Add(path, name string, colour any, doubleSided bool) error {
	abs, err := Path(path)
	if err != nil {
		return fmt.Errorf("loader.Watcher.Add: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("loader.Watcher.Add: %w", err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = watched{path: abs, name: name, colour: colour, doubleSided: doubleSided}
	slog.Debug("loader.Watcher: watching", "path", abs, "name", name)
	return nil
}

// Path returns the absolute local path for the given path.
func Path(p string) (string, error) {
	var ld Loader
	return ld.Path(p)
}

// Run handles file events until the context is done or the watcher
// is closed. It is typically run on its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			f, has := w.files[filepath.Clean(event.Name)]
			w.mu.Unlock()
			if !has {
				continue
			}
			slog.Info("loader.Watcher: importing changed file", "path", f.path, "name", f.name)
			// failures are logged and reported to OnImport by the engine
			_ = w.Engine.ImportByPath(ctx, f.path, f.name, f.colour, f.doubleSided)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("loader.Watcher", "err", err)
		}
	}
}

// Close stops watching all files.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
