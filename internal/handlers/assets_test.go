package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sanisip/internal/gateway"
	"sanisip/internal/service"
)

func TestGetAsset_ProxiesResponse(t *testing.T) {
	assets := &mockAssets{
		status: http.StatusOK,
		header: http.Header{"Content-Type": {"text/css"}, gateway.HeaderCache: {"hit"}},
		body:   "body{}",
	}
	r := newTestRouter(&service.Service{Assets: assets})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))

	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "text/css" || w.Header().Get(gateway.HeaderCache) != "hit" {
		t.Fatalf("headers not forwarded: %v", w.Header())
	}
	if assets.lastPath != "/css/site.css" {
		t.Fatalf("path = %q", assets.lastPath)
	}
}

func TestGetAsset_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"disabled", service.ErrAssetsDisabled, http.StatusNotFound},
		{"offline_without_shell", errors.New("dial tcp: connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Assets: &mockAssets{err: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d", w.Code, tc.want)
			}
		})
	}
}
