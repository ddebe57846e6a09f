package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written or created, including renames into place
type Watcher struct {
	path   string
	getenv func(string) string
	fsw    *fsnotify.Watcher
	logger *log.Logger
}

// NewWatcher starts watching the directory holding path. Watching the directory rather than
// the file also catches editors that save by rename.
func NewWatcher(path string, getenv func(string) string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{path: abs, getenv: getenv, fsw: fsw, logger: logger}, nil
}

// Run delivers each reload to fn until ctx is done or the watcher is closed.
// A failed reload is passed to fn with the error; the previous config stays in effect
// at the caller's discretion.
func (w *Watcher) Run(ctx context.Context, fn func(Config, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadWithEnv(w.path, w.getenv)
			if err != nil {
				w.logger.Printf("config: reload %s: %v", w.path, err)
			}
			fn(cfg, err)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("config: watch %s: %v", w.path, err)
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
