// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layers

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file whenever it changes, delivering
// each successfully opened and validated [Config] on [Watcher.Configs]
// and each failure on [Watcher.Errors]. The receiving side owns every
// delivered Config. Errors are always logged, and are dropped from the
// channel when a previous error has not been received yet.
type Watcher struct {
	filename string
	watcher  *fsnotify.Watcher
	configs  chan *Config
	errs     chan error
	done     chan struct{}
	wg       sync.WaitGroup
	closed   sync.Once
}

// Watch starts watching the given configuration file. The directory of
// the file is watched so that files replaced by a rename are seen as well.
func Watch(filename string) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		filename: abs,
		watcher:  fw,
		configs:  make(chan *Config),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// Configs returns the channel of reloaded configurations.
func (w *Watcher) Configs() <-chan *Config { return w.configs }

// Errors returns the channel of reload and watch errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c, err := Open(w.filename)
			if err != nil {
				w.sendError(err)
				continue
			}
			slog.Info("layers: reloaded configuration", "file", w.filename, "layers", len(c.Layers))
			select {
			case w.configs <- c:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) sendError(err error) {
	slog.Error("layers: watching configuration", "file", w.filename, "err", err)
	select {
	case w.errs <- err:
	default:
	}
}
