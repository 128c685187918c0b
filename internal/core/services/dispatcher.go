package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/logger"
)

// DefaultQuietPeriod is the debounce window used when none is configured.
const DefaultQuietPeriod = domain.DefaultDebounceMs * time.Millisecond

// SearchFunc performs one lookup for already normalised text.
type SearchFunc func(ctx context.Context, text string) ([]domain.Candidate, error)

// AfterFunc schedules f after d and returns a function that stops it.
// The stop function reports whether the call was prevented.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAfterFunc replaces the timer implementation.
func WithAfterFunc(after AfterFunc) DispatcherOption {
	return func(d *Dispatcher) {
		if after != nil {
			d.after = after
		}
	}
}

// Dispatcher coalesces bursts of queries into a single search.
//
// It holds one pending timer and a pending token. Every Dispatch bumps the
// token and restarts the timer; a fired timer only searches while it still
// owns the current token. Only the last query of a quiet window reaches
// the provider.
type Dispatcher struct {
	mu     sync.Mutex
	quiet  time.Duration
	search SearchFunc
	after  AfterFunc
	token  uint64
	stop   func() bool
}

// NewDispatcher creates a dispatcher with the given quiet period.
// A negative quiet period is treated as zero.
func NewDispatcher(quiet time.Duration, search SearchFunc, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		quiet:  max(quiet, 0),
		search: search,
		after:  timeAfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetQuietPeriod changes the debounce window for subsequent dispatches.
func (d *Dispatcher) SetQuietPeriod(quiet time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quiet = max(quiet, 0)
}

// QuietPeriod returns the current debounce window.
func (d *Dispatcher) QuietPeriod() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quiet
}

// Dispatch schedules a search for text, superseding any pending one.
// When the search completes, onResult or onError is called with the text
// that produced it. Callers decide whether the answer is still current.
// Neither callback is invoked for a superseded or cancelled dispatch.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	text string,
	onResult func(text string, candidates []domain.Candidate),
	onError func(text string, err error),
) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.token++
	token := d.token
	if d.stop != nil {
		d.stop()
	}
	d.stop = d.after(d.quiet, func() {
		d.fire(ctx, token, text, onResult, onError)
	})
}

// Cancel drops the pending dispatch, if any.
// A search already running is not interrupted.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.token++
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

// Pending returns true while a dispatch waits for its quiet period.
func (d *Dispatcher) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}

func (d *Dispatcher) fire(
	ctx context.Context,
	token uint64,
	text string,
	onResult func(string, []domain.Candidate),
	onError func(string, error),
) {
	d.mu.Lock()
	if token != d.token {
		d.mu.Unlock()
		return
	}
	d.stop = nil
	d.mu.Unlock()

	if ctx.Err() != nil {
		logger.Debug("dispatch %q skipped: %v", text, ctx.Err())
		return
	}

	logger.Debug("dispatching %q", text)
	candidates, err := d.run(ctx, text)
	if err != nil {
		logger.Warn("lookup %q failed: %v", text, err)
		if onError != nil {
			onError(text, err)
		}
		return
	}

	logger.Debug("lookup %q returned %d candidates", text, len(candidates))
	if onResult != nil {
		onResult(text, candidates)
	}
}

// run calls the search function, turning a panic into a transport error.
func (d *Dispatcher) run(ctx context.Context, text string) (candidates []domain.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("%w: lookup panicked: %v", domain.ErrTransport, r)
		}
	}()
	return d.search(ctx, text)
}
