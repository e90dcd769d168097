// Package status holds the dashboard state shared by the poll loops and the HTTP layer.
package status

import (
	"sync"
	"time"

	"sanisip/internal/classify"
	"sanisip/internal/history"
	"sanisip/internal/models"
)

// Snapshot is a point-in-time view of the dashboard.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Reading   models.Reading `json:"reading"`
	TDS       classify.Gauge `json:"tds"`
	PH        classify.Gauge `json:"ph"`
	Turbidity classify.Gauge `json:"turbidity"`
	Drinkable bool           `json:"drinkable"`
	HasData   bool           `json:"has_data"`

	History  []float64       `json:"history"`
	Points   []history.Point `json:"points"`
	Polyline string          `json:"polyline"`

	Connected bool      `json:"connected"`
	LastPoll  time.Time `json:"last_poll"`
	LastError string    `json:"last_error,omitempty"`

	Filter        models.FilterStatus `json:"filter"`
	FilterUpdated time.Time           `json:"filter_updated"`

	// Version increases on every state change; equal versions mean an
	// identical snapshot apart from Now.
	Version uint64    `json:"version"`
	Now     time.Time `json:"now"`
}

// Transition describes what a poll result changed.
type Transition struct {
	WasConnected bool
	Connected    bool
	HadData      bool
	WasDrinkable bool
	Drinkable    bool
}

// ConnectivityChanged reports a Connected/Disconnected flip.
func (t Transition) ConnectivityChanged() bool { return t.WasConnected != t.Connected }

// DrinkabilityChanged is true on the first reading and on every verdict flip.
func (t Transition) DrinkabilityChanged() bool {
	return t.Connected && (!t.HadData || t.WasDrinkable != t.Drinkable)
}

// Tracker holds mutable dashboard state behind an RWMutex. The sensor
// section and the filter section are written independently.
type Tracker struct {
	mu     sync.RWMutex
	snap   Snapshot
	hist   *history.Buffer
	canvas history.Canvas
}

// NewTracker creates a disconnected tracker with an empty TDS history.
func NewTracker(capacity int, canvas history.Canvas) *Tracker {
	return &Tracker{
		hist:   history.NewBuffer(capacity),
		canvas: canvas,
	}
}

// RecordReading applies a successful poll: the reading, the gauges, the
// history and the chart projection are replaced together.
func (t *Tracker) RecordReading(p models.SensorPayload, at time.Time) Transition {
	set := classify.Payload(p)
	r := p.Reading()

	t.mu.Lock()
	defer t.mu.Unlock()

	tr := Transition{
		WasConnected: t.snap.Connected,
		Connected:    true,
		HadData:      t.snap.HasData,
		WasDrinkable: t.snap.Drinkable,
		Drinkable:    set.Drinkable,
	}

	t.hist.Push(r.TDS)
	values := t.hist.Values()
	pts := history.Project(values, t.canvas)

	t.snap.Reading = r
	t.snap.TDS = classify.NewGauge(r.TDS, classify.TDSScalePPM, "ppm", set.TDS)
	t.snap.PH = classify.NewGauge(r.PH, classify.PHScale, "", set.PH)
	t.snap.Turbidity = classify.NewGauge(r.Turbidity, classify.TurbidityScaleNTU, "NTU", set.Turbidity)
	t.snap.Drinkable = set.Drinkable
	t.snap.HasData = true
	t.snap.History = values
	t.snap.Points = pts
	t.snap.Polyline = history.Polyline(pts)
	t.snap.Connected = true
	t.snap.LastPoll = at
	t.snap.LastError = ""
	t.snap.Version++
	return tr
}

// RecordFailure marks the feed disconnected. Reading and history are kept.
func (t *Tracker) RecordFailure(err error, at time.Time) Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr := Transition{
		WasConnected: t.snap.Connected,
		HadData:      t.snap.HasData,
		WasDrinkable: t.snap.Drinkable,
		Drinkable:    t.snap.Drinkable,
	}
	t.snap.Connected = false
	t.snap.LastPoll = at
	if err != nil {
		t.snap.LastError = err.Error()
	}
	t.snap.Version++
	return tr
}

// SetFilter replaces the filter section.
func (t *Tracker) SetFilter(fs models.FilterStatus, at time.Time) {
	t.mu.Lock()
	t.snap.Filter = fs
	t.snap.FilterUpdated = at
	t.snap.Version++
	t.mu.Unlock()
}

// Filter returns the last computed filter status.
func (t *Tracker) Filter() models.FilterStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap.Filter
}

// Snapshot returns a copy of the current state with Now set to the call time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.History = append([]float64(nil), t.snap.History...)
	s.Points = append([]history.Point(nil), t.snap.Points...)
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
