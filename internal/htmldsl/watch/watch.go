// Package watch reports changed files of a directory, debounced.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kilianc/htmldsl/internal/logging"
)

type Options struct {
	// Suffix limits events to file names ending in it. Empty accepts all.
	Suffix string
	// Debounce is the quiet period after the last event before OnChange runs.
	Debounce time.Duration
	Logger   *zap.Logger
}

// Run watches dir (not recursive) until ctx is done. onChange receives the
// sorted, absolute paths created or written since the previous call. It runs
// on the watching goroutine, so events arriving meanwhile are batched into
// the next call.
func Run(ctx context.Context, dir string, opts Options, onChange func(paths []string)) error {
	logger := logging.OrNop(opts.Logger)

	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching", zap.String("dir", dir), zap.Duration("debounce", opts.Debounce))

	pending := map[string]bool{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped", zap.String("dir", dir))
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, opts.Suffix) {
				continue
			}
			logger.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending[event.Name] = true
			fire = time.After(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

func relevant(event fsnotify.Event, suffix string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return strings.HasSuffix(event.Name, suffix)
}
