package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"sanisip/internal/models"
	"sanisip/internal/service"
	"sanisip/internal/status"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	mu   sync.Mutex
	snap status.Snapshot
	err  error
}

func (m *mockMonitoring) GetSnapshot(ctx context.Context) (status.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.err
}

func (m *mockMonitoring) set(snap status.Snapshot) {
	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()
}

type mockFilter struct {
	mu sync.Mutex

	status   models.FilterStatus
	statErr  error
	startErr error
	resetErr error

	lastStartDate time.Time
	lastConfirmed bool
	startCalls    int
	resetCalls    int
	refreshCalls  int
}

func (m *mockFilter) Status(ctx context.Context) (models.FilterStatus, error) {
	return m.status, m.statErr
}

func (m *mockFilter) SetStartDate(ctx context.Context, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
	m.lastStartDate = date
	return m.startErr
}

func (m *mockFilter) ResetDaysUsed(ctx context.Context, confirmed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCalls++
	m.lastConfirmed = confirmed
	if !confirmed {
		return service.ErrConfirmationRequired
	}
	return m.resetErr
}

func (m *mockFilter) Refresh(ctx context.Context) error {
	m.refreshCalls++
	return nil
}

func (m *mockFilter) Watch(ctx context.Context, interval time.Duration) {}

type mockEventLog struct {
	resp     []models.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockAssets struct {
	status   int
	header   http.Header
	body     string
	err      error
	lastPath string
}

func (m *mockAssets) Fetch(ctx context.Context, path string) (*http.Response, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	h := m.header
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{
		StatusCode: m.status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(m.body)),
	}, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
