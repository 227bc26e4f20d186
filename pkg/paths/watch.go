package paths

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch clears the lookup memo whenever an entry is created, removed or
// renamed anywhere below the current search directories. Subdirectories are
// watched too, and directories created while Watch runs are added as they
// appear. Search directories added after Watch starts are not watched; adding
// them clears the memo anyway.
//
// Watch returns once the watcher is running; it stops when ctx is done.
// The returned channel is closed at that point.
func (s *SystemPaths) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	roots := s.watchRoots()
	for _, root := range roots {
		if err := s.watchTree(w, root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	s.logger.Debug("Watching search paths", "roots", roots, "dirs", len(w.WatchList()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				s.logger.Debug("Search path changed", "event", event.Op.String(), "name", event.Name)
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					if err := s.watchTree(w, event.Name); err != nil {
						s.logger.Warn("Could not watch new directory", "dir", event.Name, "error", err)
					}
				}
				// Cleared after any new directory is watched so lookups that
				// raced its contents are not kept.
				s.ClearMemo()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Search path watcher error", "error", err)
			}
		}
	}()

	return done, nil
}

// watchTree adds root and every directory below it to w. Subdirectories that
// cannot be read are skipped.
func (s *SystemPaths) watchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			s.logger.Debug("Skipping unreadable directory", "dir", p, "error", err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			if p == root {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			s.logger.Debug("Skipping directory", "dir", p, "error", err)
		}
		return nil
	})
}

// watchRoots lists the search directories that exist. Suffixed variants live
// below them and are picked up by watchTree.
func (s *SystemPaths) watchRoots() []string {
	s.mu.RLock()
	dirs := s.filePathsLocked()
	s.mu.RUnlock()

	var out []string
	for _, dir := range dirs {
		if isDir(dir) {
			out = append(out, dir)
		}
	}
	return out
}
