package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
	"github.com/custodia-labs/placepick/internal/logger"
)

// Ensure PickerService implements the interface.
var _ driving.PickerService = (*PickerService)(nil)

// PickerOption configures a PickerService.
type PickerOption func(*pickerOptions)

type pickerOptions struct {
	dispatcher []DispatcherOption
}

// WithDispatcherOptions passes options to the underlying dispatcher.
func WithDispatcherOptions(opts ...DispatcherOption) PickerOption {
	return func(o *pickerOptions) {
		o.dispatcher = append(o.dispatcher, opts...)
	}
}

// PickerService is the presentation state controller of the picker.
//
// It is the single writer of the observable snapshot. All mutations happen
// under mu and bump the snapshot revision; subscribers are notified after
// the lock is released. Search answers are applied only while their query
// still equals the live normalised input.
type PickerService struct {
	lookup     *LookupService
	dispatcher *Dispatcher

	mu             sync.Mutex
	snap           domain.Snapshot
	lastDispatched string
	lastFailed     bool
	closed         bool
	subscribers    map[int]func(domain.Snapshot)
	nextSubscriber int
}

// NewPickerService creates a picker backed by geocoder.
// The picker starts idle with an empty input.
func NewPickerService(geocoder driven.Geocoder, settings domain.PickerSettings, opts ...PickerOption) *PickerService {
	var o pickerOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &PickerService{
		lookup:      NewLookupService(geocoder, settings),
		snap:        domain.Snapshot{State: domain.StateIdle},
		subscribers: make(map[int]func(domain.Snapshot)),
	}
	p.dispatcher = NewDispatcher(quietPeriod(settings), p.search, o.dispatcher...)
	return p
}

// SetInput records a change of the input text.
func (p *PickerService) SetInput(ctx context.Context, raw string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	settings := p.lookup.Settings()
	q := domain.NormalizeQuery(raw, settings.MinimumSearchLength)
	p.snap.InputText = raw
	p.snap.Query = q.Text

	if !q.Eligible {
		p.dispatcher.Cancel()
		p.lastDispatched = ""
		p.lastFailed = false

		tooltip := ""
		if !q.IsEmpty() {
			tooltip = domain.TooltipTooShort(minimumLength(settings))
		}
		p.setLocked(domain.StateIdle, nil, tooltip)
		p.commitAndNotify()
		return
	}

	if q.Text == p.lastDispatched && !p.lastFailed {
		p.commitAndNotify()
		return
	}

	p.lastDispatched = q.Text
	p.lastFailed = false
	p.snap.State = domain.StateLoading
	p.snap.Loading = true
	p.snap.Tooltip = ""
	p.dispatcher.Dispatch(ctx, q.Text, p.applyResult, p.applyError)
	p.commitAndNotify()
}

// Select picks the candidate at index from the current snapshot.
func (p *PickerService) Select(ctx context.Context, index int) (domain.Pick, error) {
	if err := ctx.Err(); err != nil {
		return domain.Pick{}, err
	}

	p.mu.Lock()
	if index < 0 || index >= len(p.snap.Candidates) {
		count := len(p.snap.Candidates)
		p.mu.Unlock()
		return domain.Pick{}, fmt.Errorf("%w: no candidate at index %d of %d", domain.ErrInvalidInput, index, count)
	}

	candidate := p.snap.Candidates[index]
	selection := domain.NewSelection(candidate)
	pick := domain.Pick{
		Candidate: candidate,
		Selection: selection,
		Encoded:   domain.EncodeSelection(selection),
	}

	p.dispatcher.Cancel()

	label := candidate.Label()
	q := domain.NormalizeQuery(label, p.lookup.Settings().MinimumSearchLength)
	p.snap.InputText = label
	p.snap.Query = q.Text
	p.lastDispatched = q.Text
	p.lastFailed = false
	p.setLocked(domain.StateIdle, nil, "")

	logger.Debug("picked %q (%s, %s)", label, selection.Latitude, selection.Longitude)
	p.commitAndNotify()
	return pick, nil
}

// Snapshot returns the current observable state.
func (p *PickerService) Snapshot() domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyLocked()
}

// Subscribe registers fn to be called after every state change.
func (p *PickerService) Subscribe(fn func(domain.Snapshot)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubscriber
	p.nextSubscriber++
	p.subscribers[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

// SetSettings replaces the picker settings at runtime.
// The current input is not re-evaluated; the next keystroke uses the new settings.
func (p *PickerService) SetSettings(settings domain.PickerSettings) {
	p.lookup.SetSettings(settings)
	p.dispatcher.SetQuietPeriod(quietPeriod(settings))
	logger.Debug("picker settings updated: min=%d debounce=%dms type=%s",
		settings.MinimumSearchLength, settings.DebounceMs, settings.QueryType)
}

// Settings returns the current picker settings.
func (p *PickerService) Settings() domain.PickerSettings {
	return p.lookup.Settings()
}

// Close cancels pending work. Late search answers are ignored.
func (p *PickerService) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.dispatcher.Cancel()
}

func (p *PickerService) search(ctx context.Context, text string) ([]domain.Candidate, error) {
	return p.lookup.lookup(ctx, text, p.lookup.Settings().Filters())
}

func (p *PickerService) applyResult(text string, candidates []domain.Candidate) {
	p.mu.Lock()
	if !p.currentLocked(text) {
		p.mu.Unlock()
		logger.Debug("dropping stale result for %q", text)
		return
	}

	p.lastFailed = false
	if len(candidates) == 0 {
		p.setLocked(domain.StateShowingEmpty, nil, domain.TooltipNotFound)
	} else {
		p.setLocked(domain.StateShowingResults, candidates, "")
	}
	p.commitAndNotify()
}

func (p *PickerService) applyError(text string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	p.mu.Lock()
	if !p.currentLocked(text) {
		p.mu.Unlock()
		logger.Debug("dropping stale failure for %q", text)
		return
	}

	p.lastFailed = true
	p.setLocked(domain.StateShowingError, nil, tooltipForError(err))
	p.commitAndNotify()
}

// currentLocked reports whether an answer for text may still be applied.
func (p *PickerService) currentLocked(text string) bool {
	return !p.closed && p.snap.Loading && text == p.snap.Query
}

func (p *PickerService) setLocked(state domain.SearchState, candidates []domain.Candidate, tooltip string) {
	p.snap.State = state
	p.snap.Candidates = candidates
	p.snap.Tooltip = tooltip
	p.snap.Loading = state == domain.StateLoading
}

// commitAndNotify bumps the revision, releases mu and notifies subscribers.
// The caller must hold mu.
func (p *PickerService) commitAndNotify() {
	p.snap.Revision++
	snap := p.copyLocked()
	subscribers := make([]func(domain.Snapshot), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subscribers = append(subscribers, fn)
	}
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

func (p *PickerService) copyLocked() domain.Snapshot {
	snap := p.snap
	snap.Candidates = slices.Clone(p.snap.Candidates)
	return snap
}

func quietPeriod(settings domain.PickerSettings) time.Duration {
	return time.Duration(settings.DebounceMs) * time.Millisecond
}

func tooltipForError(err error) string {
	if errors.Is(err, domain.ErrMissingCredentials) {
		return domain.TooltipNotConfigured
	}
	return domain.TooltipUnavailable
}
