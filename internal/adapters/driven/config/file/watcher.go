package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/placepick/internal/logger"
)

// DefaultSettle is how long the watcher waits for a burst of file events to end.
const DefaultSettle = 150 * time.Millisecond

// Reload reports that the config file changed and the store was reloaded.
type Reload struct {
	// Err is set when the new file could not be read or parsed.
	// The store then keeps its previous values.
	Err error
}

// Watcher reloads a ConfigStore when its file changes on disk.
// The parent directory is watched so editors that replace the file
// through a rename are noticed too.
type Watcher struct {
	store  *ConfigStore
	settle time.Duration
}

// NewWatcher creates a watcher for store.
func NewWatcher(store *ConfigStore) *Watcher {
	return &Watcher{
		store:  store,
		settle: DefaultSettle,
	}
}

// Watch starts watching and returns a channel of reload notifications.
// The channel is closed when ctx is cancelled or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan Reload, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.store.Path())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.store.Path()), err)
	}

	out := make(chan Reload, 1)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Reload) {
	defer close(out)
	defer fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.handleFsEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)

		case <-fire:
			fire = nil
			reload := Reload{Err: w.reload()}
			select {
			case out <- reload:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent reports whether event concerns the config file contents.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}

// reload loads the store, keeping previous values if the file is unreadable.
func (w *Watcher) reload() error {
	if err := w.store.Load(); err != nil {
		logger.Warn("config reload failed, keeping previous values: %v", err)
		return err
	}
	logger.Debug("config reloaded from %s", w.store.Path())
	return nil
}
