package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire format of FilterState.StartDate.
const DateLayout = "2006-01-02"

// FilterState is the persisted filter usage document.
type FilterState struct {
	StartDate *time.Time
	DaysUsed  int
}

type filterWire struct {
	StartDate      *string `json:"StartDate"`
	FilterDaysUsed int     `json:"FilterDaysUsed"`
}

// MarshalJSON writes the full document, as used by replacement writes.
func (f FilterState) MarshalJSON() ([]byte, error) {
	w := filterWire{FilterDaysUsed: f.DaysUsed}
	if f.StartDate != nil {
		s := f.StartDate.Format(DateLayout)
		w.StartDate = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON tolerates missing fields, string counters and RFC3339 dates.
// Counters are clamped to [0, maxDayCount].
func (f *FilterState) UnmarshalJSON(b []byte) error {
	m, err := decodeObject(b)
	if err != nil {
		return err
	}
	*f = FilterState{}
	if s, ok := m["StartDate"].(string); ok {
		if t, ok := ParseDate(s); ok {
			f.StartDate = &t
		}
	}
	f.DaysUsed = toDayCount(m["FilterDaysUsed"])
	return nil
}

// maxDayCount caps corrupt counters; anything this large is long expired.
const maxDayCount = math.MaxInt32

// toDayCount rounds v to a day counter in [0, maxDayCount]. Non-numeric and
// NaN values are 0; huge values, +Inf included, saturate.
func toDayCount(v any) int {
	n, ok := parseNumber(v)
	switch {
	case !ok, math.IsNaN(n), n <= 0:
		return 0
	case n >= maxDayCount:
		return maxDayCount
	}
	return int(math.Round(n))
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the UTC calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			y, mo, d := t.Date()
			return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Filter severities.
const (
	SeverityDanger  = "danger"
	SeverityCaution = "caution"
	SeverityOK      = "ok"
)

// FilterStatus is the derived view rendered by the dashboard.
type FilterStatus struct {
	StartDate string `json:"start_date,omitempty"`
	DaysUsed  int    `json:"days_used"`
	DaysLeft  int    `json:"days_left"`
	Percent   int    `json:"percent"`
	Expired   bool   `json:"expired"`
	Warning   bool   `json:"warning"`
	Severity  string `json:"severity"`
	Badge     string `json:"badge"`
	Banner    string `json:"banner,omitempty"`
}
