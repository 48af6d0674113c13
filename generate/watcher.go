package generate

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before regenerating.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single input file.
//
// The parent directory is watched rather than the file itself, since most
// editors save by writing a temporary file and renaming it over the
// original, which drops a watch held on the file.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.SugaredLogger
}

// NewWatcher starts watching path. A zero debounce uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, log *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		log:      logger.OrNop(log),
	}, nil
}

// Run calls onChange once per settled burst of changes to the watched file,
// until ctx is cancelled. Calls happen on the goroutine running Run and
// never overlap. An error from onChange is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.watcher.Close()

	// Timers never deliver a stale tick after Stop or Reset (Go 1.23+).
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("input changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := onChange(); err != nil {
				w.log.Errorw("regeneration failed",
					logger.FieldFile, w.path,
					logger.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

// Close stops watching. It is only needed when Run is never called.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
