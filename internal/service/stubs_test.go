package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sanisip/internal/history"
	"sanisip/internal/models"
	"sanisip/internal/status"
)

// ---- Test doubles shared by the poller and filter tests ----

// recordingEventRepo is a concurrency-safe repository.EventRepo stub.
type recordingEventRepo struct {
	mu        sync.Mutex
	events    []models.Event
	appendErr error
}

func (r *recordingEventRepo) Append(ctx context.Context, e models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, e)
	return nil
}

// List applies the same inclusive range and exact type match as the SQLite repo.
func (r *recordingEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.snapshot() {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *recordingEventRepo) snapshot() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...)
}

func (r *recordingEventRepo) types() []string {
	var out []string
	for _, e := range r.snapshot() {
		out = append(out, e.Type)
	}
	return out
}

// fakeRecorder implements Recorder.
type fakeRecorder struct {
	mu       sync.Mutex
	pollsOK  int
	pollsErr int
	daysLeft int
	writes   []string
}

func (f *fakeRecorder) ObservePoll(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ok {
		f.pollsOK++
	} else {
		f.pollsErr++
	}
}

func (f *fakeRecorder) SetFilterDaysLeft(days int) {
	f.mu.Lock()
	f.daysLeft = days
	f.mu.Unlock()
}

func (f *fakeRecorder) ObserveFilterWrite(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	f.writes = append(f.writes, op+":"+result)
}

// sensorResult is one scripted GetSensor answer.
type sensorResult struct {
	payload models.SensorPayload
	err     error
}

// fakeSensor replays scripted results; the last one repeats.
type fakeSensor struct {
	mu      sync.Mutex
	results []sensorResult
	calls   int

	// started receives one value per call when non-nil.
	started chan struct{}
	// release blocks every call until closed when non-nil.
	release chan struct{}
}

func (f *fakeSensor) GetSensor(ctx context.Context) (models.SensorPayload, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	var res sensorResult
	if len(f.results) > 0 {
		res = f.results[min(i, len(f.results)-1)]
	}
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return res.payload, res.err
}

func (f *fakeSensor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeFilterStore is an in-memory filter document with replace/merge semantics.
type fakeFilterStore struct {
	mu       sync.Mutex
	state    models.FilterState
	getErr   error
	putErr   error
	patchErr error
	gets     int
	puts     []models.FilterState
	patches  []map[string]any

	// writeStarted/writeRelease let a test hold a write in flight.
	writeStarted chan struct{}
	writeRelease chan struct{}
}

func (f *fakeFilterStore) GetFilter(ctx context.Context) (models.FilterState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return models.FilterState{}, f.getErr
	}
	return f.state, nil
}

func (f *fakeFilterStore) PutFilter(ctx context.Context, s models.FilterState) error {
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, s)
	f.state = s
	return nil
}

func (f *fakeFilterStore) PatchFilter(ctx context.Context, fields map[string]any) error {
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patches = append(f.patches, fields)
	if v, ok := fields["FilterDaysUsed"].(int); ok {
		f.state.DaysUsed = v
	}
	return nil
}

func (f *fakeFilterStore) hold() {
	if f.writeStarted != nil {
		f.writeStarted <- struct{}{}
	}
	if f.writeRelease != nil {
		<-f.writeRelease
	}
}

func (f *fakeFilterStore) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

// ---- Shared helpers ----

var errFetch = errors.New("fetch failed")

func newTestTracker() *status.Tracker {
	return status.NewTracker(history.DefaultCapacity, history.DefaultCanvas)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
