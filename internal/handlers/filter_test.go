package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sanisip/internal/models"
	"sanisip/internal/service"
)

func postJSON(t *testing.T, r http.Handler, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetFilter(t *testing.T) {
	fil := &mockFilter{status: models.FilterStatus{DaysUsed: 10, DaysLeft: 80, Severity: models.SeverityOK, Badge: "Good"}}
	r := newTestRouter(&service.Service{Filter: fil})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/filter", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var fs models.FilterStatus
	_ = json.Unmarshal(w.Body.Bytes(), &fs)
	if fs.DaysLeft != 80 || fs.Badge != "Good" {
		t.Fatalf("unexpected filter: %+v", fs)
	}
}

func TestSetStartDate(t *testing.T) {
	fil := &mockFilter{status: models.FilterStatus{StartDate: "2026-03-01", Badge: "Good"}}
	r := newTestRouter(&service.Service{Filter: fil})

	w := postJSON(t, r, "/api/v1/filter/start-date", `{"start_date":"2026-03-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if fil.startCalls != 1 || !fil.lastStartDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("SetStartDate calls=%d date=%v", fil.startCalls, fil.lastStartDate)
	}

	var resp struct {
		Status string              `json:"status"`
		Filter models.FilterStatus `json:"filter"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusStartDateSet || resp.Filter.StartDate != "2026-03-01" {
		t.Fatalf("bad response: %+v", resp)
	}
}

func TestSetStartDate_BadInput(t *testing.T) {
	fil := &mockFilter{}
	r := newTestRouter(&service.Service{Filter: fil})

	for _, body := range []string{`{}`, `{"start_date":"03/01/2026"}`, `not json`} {
		w := postJSON(t, r, "/api/v1/filter/start-date", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
	if fil.startCalls != 0 {
		t.Fatalf("service must not be called on bad input")
	}
}

func TestResetDaysUsed(t *testing.T) {
	fil := &mockFilter{}
	r := newTestRouter(&service.Service{Filter: fil})

	w := postJSON(t, r, "/api/v1/filter/reset", `{"confirm":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if fil.resetCalls != 1 || !fil.lastConfirmed {
		t.Fatalf("reset calls=%d confirmed=%v", fil.resetCalls, fil.lastConfirmed)
	}
}

func TestResetDaysUsed_ConfirmGuard(t *testing.T) {
	fil := &mockFilter{}
	r := newTestRouter(&service.Service{Filter: fil})

	for _, body := range []string{`{"confirm":false}`, `{}`} {
		w := postJSON(t, r, "/api/v1/filter/reset", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestFilterWrites_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"in_progress", service.ErrWriteInProgress, http.StatusConflict},
		{"remote_failure", fmt.Errorf("%w: %w", service.ErrWriteFailed, errors.New("500")), http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fil := &mockFilter{startErr: tc.err, resetErr: tc.err}
			r := newTestRouter(&service.Service{Filter: fil})

			if w := postJSON(t, r, "/api/v1/filter/start-date", `{"start_date":"2026-03-01"}`); w.Code != tc.want {
				t.Fatalf("start-date: status=%d, want %d", w.Code, tc.want)
			}
			w := postJSON(t, r, "/api/v1/filter/reset", `{"confirm":true}`)
			if w.Code != tc.want {
				t.Fatalf("reset: status=%d, want %d", w.Code, tc.want)
			}
			var body map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["error"] == "" {
				t.Fatalf("expected a user-visible error message")
			}
		})
	}
}
