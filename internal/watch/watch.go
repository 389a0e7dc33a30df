// Package watch re-runs an action whenever a file changes.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/dshills/fsview/internal/logging"
)

// DefaultDelay is the debounce interval used when none is configured.
const DefaultDelay = 100 * time.Millisecond

// ErrPathNotExist indicates the watched file does not exist.
var ErrPathNotExist = errors.New("path does not exist")

// FileWatcher watches a single file. The parent directory is watched so
// that editors which replace the file by renaming are still observed.
type FileWatcher struct {
	path  string
	delay time.Duration
	log   *logrus.Entry
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDelay sets the debounce interval. Changes closer together than the
// interval trigger a single run.
func WithDelay(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(w *FileWatcher) {
		w.log = logging.Component(l, "watch")
	}
}

// New creates a watcher for path.
func New(path string, opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	w := &FileWatcher{
		path:  absPath,
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.delay <= 0 {
		w.delay = DefaultDelay
	}
	if w.log == nil {
		w.log = logging.Component(nil, "watch")
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run calls fn once immediately and again after every debounced change to
// the file. It blocks until ctx is done or fn returns an error.
func (w *FileWatcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.WithField("op", ev.Op.String()).Debug("file changed")
			timer.Reset(w.delay)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-timer.C:
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether ev changes the content of the watched file.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
