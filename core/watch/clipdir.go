// Package watch adds audio files dropped into a directory to the catalog.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"Sampler/core/audio"
	"Sampler/logger"
	"Sampler/model"

	"github.com/fsnotify/fsnotify"
)

// Submitter is the part of the catalog the watcher needs.
type Submitter interface {
	Submit(d model.Draft) (model.Sound, error)
}

// ClipDir watches one directory. Each file path is added at most once.
type ClipDir struct {
	dir     string
	catalog Submitter

	mu   sync.Mutex
	seen map[string]bool
}

// NewClipDir creates a watcher for dir.
func NewClipDir(dir string, catalog Submitter) (*ClipDir, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve clips dir %s: %w", dir, err)
	}
	return &ClipDir{dir: abs, catalog: catalog, seen: make(map[string]bool)}, nil
}

// Scan adds the audio files already present, in name order.
func (w *ClipDir) Scan() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read clips dir %s: %w", w.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w.add(filepath.Join(w.dir, name))
	}
	return nil
}

// Run scans the directory, then adds new files as they appear until ctx is
// cancelled.
func (w *ClipDir) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	// Scan after Add so files created in between are not missed; duplicates
	// are filtered by seen.
	if err := w.Scan(); err != nil {
		return err
	}
	logger.Info("watching clips dir", logger.String("dir", w.dir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
				w.add(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("clips watcher error", logger.ErrorField(err))
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *ClipDir) add(path string) {
	if !audio.IsAudioFile(path) {
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	if w.seen[path] {
		w.mu.Unlock()
		return
	}
	w.seen[path] = true
	w.mu.Unlock()

	s, err := w.catalog.Submit(DraftFor(path))
	if err != nil {
		logger.Warn("clip not added", logger.String("path", path), logger.ErrorField(err))
		return
	}
	logger.Info("clip added from directory",
		logger.String("id", s.ID),
		logger.String("name", s.Name),
		logger.String("path", path))
}

// DraftFor turns a file path into a draft named after the file.
func DraftFor(path string) model.Draft {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return model.Draft{Name: strings.TrimSpace(name), Source: path}
}
