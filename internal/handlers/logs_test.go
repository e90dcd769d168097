package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sanisip/internal/models"
	"sanisip/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.Event{
		{EventID: "e1", OccurredAt: now, Type: models.EventOffline, Description: "Sensor feed went offline"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventFilterReset, Description: "Filter days used reset"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{EventLog: logs}
	r := newTestRouter(s)

	// Missing/invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=notatime", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Valid range and type (lowercase type should be normalized to upper in service call)
	w = httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=filter_reset"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int            `json:"count"`
		Events []models.Event `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "FILTER_RESET" {
		t.Fatalf("expected lastType FILTER_RESET, got %q", logs.lastType)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2026-03-01&to=2026-03-01", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	wantFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastFrom.Equal(wantFrom) || !logs.lastTo.Equal(wantTo) {
		t.Fatalf("range = [%v, %v], want [%v, %v]", logs.lastFrom, logs.lastTo, wantFrom, wantTo)
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	logs := &mockEventLog{err: errors.New("db down")}
	r := newTestRouter(&service.Service{EventLog: logs})

	cases := []struct {
		name string
		url  string
		want int
	}{
		{"invalid_to", "/api/v1/logs?to=yesterday", http.StatusBadRequest},
		{"from_after_to", "/api/v1/logs?from=2026-03-02&to=2026-03-01T00:00:00Z", http.StatusBadRequest},
		{"unknown_type", "/api/v1/logs?type=furnace_on", http.StatusBadRequest},
		{"service_error", "/api/v1/logs", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestLogsHandler_ServiceValidationIsClientError(t *testing.T) {
	for _, err := range []error{service.ErrInvalidTimeRange, service.ErrUnknownEventType} {
		r := newTestRouter(&service.Service{EventLog: &mockEventLog{err: err}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?type=online", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%v: status=%d, want 400", err, w.Code)
		}
	}
}
