package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFilterState_DayCounter(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`{"FilterDaysUsed":40}`, 40},
		{`{"FilterDaysUsed":"40"}`, 40},
		{`{"FilterDaysUsed":39.6}`, 40},
		{`{"FilterDaysUsed":-5}`, 0},
		{`{}`, 0},
		{`{"FilterDaysUsed":"nan"}`, 0},
		{`{"FilterDaysUsed":1e300}`, math.MaxInt32},
		{`{"FilterDaysUsed":1e400}`, math.MaxInt32},
		{`{"FilterDaysUsed":"Infinity"}`, math.MaxInt32},
		{`{"FilterDaysUsed":"-Infinity"}`, 0},
	}
	for _, tc := range cases {
		var f FilterState
		if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.in, err)
		}
		if f.DaysUsed != tc.want {
			t.Errorf("%s: DaysUsed = %d, want %d", tc.in, f.DaysUsed, tc.want)
		}
	}
}

func TestFilterState_StartDate(t *testing.T) {
	var f FilterState
	if err := json.Unmarshal([]byte(`{"StartDate":"2026-03-01T10:00:00+02:00","FilterDaysUsed":3}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.StartDate == nil || f.StartDate.Format(DateLayout) != "2026-03-01" {
		t.Fatalf("StartDate = %v", f.StartDate)
	}

	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"StartDate":"2026-03-01","FilterDaysUsed":3}` {
		t.Fatalf("wire = %s", b)
	}

	var empty FilterState
	_ = json.Unmarshal([]byte(`{"StartDate":"soon"}`), &empty)
	if empty.StartDate != nil {
		t.Fatalf("unparseable date should be absent, got %v", empty.StartDate)
	}
}
