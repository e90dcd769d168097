package notify

import "sync"

// FakePublisher records published events for test assertions.
// Safe for concurrent use by overlapping poll cycles.
type FakePublisher struct {
	mu sync.Mutex

	events   []StatusEvent
	payloads [][]byte

	// PublishError, if set, will be returned by PublishStatus.
	PublishError error

	closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishStatus(event StatusEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events.
func (f *FakePublisher) Events() []StatusEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]StatusEvent(nil), f.events...)
}

// Payloads returns a copy of the recorded JSON payloads.
func (f *FakePublisher) Payloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.payloads...)
}

// Closed reports whether Close was called.
func (f *FakePublisher) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
