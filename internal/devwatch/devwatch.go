// Package devwatch watches a set of source trees for .go/.html changes
// and calls back once changes settle, debounced the same way the
// teacher's own dev server debounces rapid fsnotify events before
// triggering a WASM rebuild.
package devwatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches Paths (files or directories, walked recursively) and
// calls OnChange after Debounce has elapsed with no further events.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func()
	OnError  func(error)
}

// New returns a Watcher with the teacher's own 200ms debounce default.
func New(onChange func(), paths ...string) *Watcher {
	return &Watcher{Paths: paths, Debounce: 200 * time.Millisecond, OnChange: onChange}
}

// Run blocks, watching until ctx is done or an unrecoverable error
// occurs setting up fsnotify.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range w.Paths {
		addRecursive(watcher, p)
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name) {
				continue
			}
			debounce.Reset(w.Debounce)
		case <-debounce.C:
			if w.OnChange != nil {
				w.OnChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func relevant(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".go") || strings.HasSuffix(name, ".html")
}

func addRecursive(watcher *fsnotify.Watcher, root string) {
	info, err := os.Stat(root)
	if err != nil {
		return
	}
	if !info.IsDir() {
		_ = watcher.Add(root)
		return
	}
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			_ = watcher.Add(path)
		}
		return nil
	})
}
