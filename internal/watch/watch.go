// Package watch reruns generation when descriptor or config files change.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"streamop-generator/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called with the tracked files that changed since the last
// call, sorted. An error is logged and watching continues.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files. The parent directories are watched
// so that files replaced by rename are still seen.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New starts watching files.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		watcher:  fw,
		debounce: debounce,
	}

	dirs := map[string]bool{}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}

		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		dirs[dir] = true

		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}

	slices.Sort(files)

	return files
}

// Run delivers debounced changes to onChange until ctx is done, then closes
// the watcher.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.watcher.Close()

	log := logger.Component("watch")

	var (
		pending = map[string]bool{}
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			log.Debugw("change detected", "file", event.Name, "op", event.Op.String())

			pending[filepath.Clean(event.Name)] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			log.Warnw("watcher error", "error", err)

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}

			slices.Sort(changed)
			clear(pending)

			if err := onChange(ctx, changed); err != nil {
				log.Errorw("regeneration failed", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	if isBackupFile(event.Name) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return w.files[abs]
}

func isBackupFile(name string) bool {
	base := filepath.Base(name)

	return strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") ||
		strings.HasPrefix(base, ".#")
}
