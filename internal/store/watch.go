package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"navcard-cli/internal/debug"
)

// Watch signals on the returned channel whenever anything under the store
// directory changes, coalescing bursts of filesystem activity into one
// signal. The channel closes when ctx is done or the watcher dies; callers
// treat a close as "stop refreshing", never as an error.
func (s Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{s.Dir}
	_ = filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != s.Dir {
			dirs = append(dirs, path)
		}
		return nil
	})
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time
		const debounce = 100 * time.Millisecond

		arm := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timerC:
				select {
				case out <- struct{}{}:
				default:
					// Consumer not ready; the pending signal already
					// covers this burst.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				debug.Logf("store watch: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories (diskv creates them as cards grow) need
				// their own watch to catch later writes.
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						if err := watcher.Add(filepath.Clean(evt.Name)); err != nil {
							debug.Logf("store watch add %s: %v", evt.Name, err)
						}
					}
				}
				arm()
			}
		}
	}()

	return out, nil
}
