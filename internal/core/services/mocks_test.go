package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// --- Mock implementations ---

// geocoderCall records one Search call.
type geocoderCall struct {
	Query   string
	Filters domain.SearchFilters
}

// mockGeocoder implements driven.Geocoder for testing.
// Queries listed in gates block until their channel is closed.
type mockGeocoder struct {
	mu      sync.Mutex
	results map[string][]domain.GeoRecord
	errs    map[string]error
	gates   map[string]chan struct{}
	calls   []geocoderCall
}

func newMockGeocoder() *mockGeocoder {
	return &mockGeocoder{
		results: make(map[string][]domain.GeoRecord),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (m *mockGeocoder) on(query string, records ...domain.GeoRecord) *mockGeocoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[query] = records
	return m
}

func (m *mockGeocoder) fail(query string, err error) *mockGeocoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[query] = err
	return m
}

func (m *mockGeocoder) gate(query string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.gates[query] = ch
	return ch
}

func (m *mockGeocoder) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.GeoRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, geocoderCall{Query: query, Filters: filters})
	gate := m.gates[query]
	records := m.results[query]
	err := m.errs[query]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (m *mockGeocoder) Calls() []geocoderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]geocoderCall(nil), m.calls...)
}

func (m *mockGeocoder) Queries() []string {
	calls := m.Calls()
	queries := make([]string, len(calls))
	for i, c := range calls {
		queries[i] = c.Query
	}
	return queries
}

// fakeTimers implements AfterFunc with timers fired on demand.
type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) func() bool {
	ft.mu.Lock()
	defer ft.mu.Unlock()

	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)

	return func() bool {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		if t.stopped || t.fired {
			return false
		}
		t.stopped = true
		return true
	}
}

// Fire runs every active timer synchronously and returns how many ran.
func (ft *fakeTimers) Fire() int {
	ft.mu.Lock()
	var due []*fakeTimer
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	ft.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// Active returns the number of timers neither fired nor stopped.
func (ft *fakeTimers) Active() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// LastDuration returns the delay of the most recently scheduled timer.
func (ft *fakeTimers) LastDuration() time.Duration {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if len(ft.timers) == 0 {
		return 0
	}
	return ft.timers[len(ft.timers)-1].d
}

// snapshotRecorder collects snapshots delivered to a subscriber.
type snapshotRecorder struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (r *snapshotRecorder) record(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *snapshotRecorder) All() []domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Snapshot(nil), r.snaps...)
}

func newYork(id int64, lat, lng string) domain.GeoRecord {
	return domain.GeoRecord{
		GeonameID:   id,
		Name:        "New York",
		AdminName1:  "New York",
		CountryName: "United States",
		Lat:         lat,
		Lng:         lng,
	}
}

func defaultPickerSettings() domain.PickerSettings {
	return domain.DefaultAppSettings().Picker
}
