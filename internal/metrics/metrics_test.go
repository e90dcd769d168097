package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePoll(t *testing.T) {
	m := New()

	m.ObservePoll(true)
	m.ObservePoll(true)
	m.ObservePoll(false)

	if got := testutil.ToFloat64(m.polls.WithLabelValues(ResultOK)); got != 2 {
		t.Fatalf("ok polls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.polls.WithLabelValues(ResultError)); got != 1 {
		t.Fatalf("error polls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.connected); got != 0 {
		t.Fatalf("connected = %v, want 0 after a failure", got)
	}
}

func TestObserveCacheAndFilter(t *testing.T) {
	m := New()

	m.ObserveCache("network_first", "offline")
	m.SetFilterDaysLeft(7)
	m.ObserveFilterWrite("reset", errors.New("boom"))
	m.ObserveFilterWrite("reset", nil)

	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("network_first", "offline")); got != 1 {
		t.Fatalf("cache counter = %v", got)
	}
	if got := testutil.ToFloat64(m.filterDaysLeft); got != 7 {
		t.Fatalf("days left = %v", got)
	}
	if got := testutil.ToFloat64(m.filterWrites.WithLabelValues("reset", ResultError)); got != 1 {
		t.Fatalf("failed writes = %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObservePoll(true)
	m.ObserveCache("cache_first", "cache")
	m.SetFilterDaysLeft(1)
	m.ObserveFilterWrite("start_date", nil)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObservePoll(true)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{"sanisip_poll_total", "sanisip_connected 1", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
