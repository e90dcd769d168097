package service

import (
	"context"
	"net/http"
	"time"

	"sanisip/internal/logger"
	"sanisip/internal/models"
	"sanisip/internal/notify"
	"sanisip/internal/repository"
	"sanisip/internal/status"
)

// Monitoring exposes the read-only dashboard snapshot.
type Monitoring interface {
	GetSnapshot(ctx context.Context) (status.Snapshot, error)
}

// Filter exposes filter-life status and the maintenance writes.
type Filter interface {
	Status(ctx context.Context) (models.FilterStatus, error)
	SetStartDate(ctx context.Context, date time.Time) error
	ResetDaysUsed(ctx context.Context, confirmed bool) error
	Refresh(ctx context.Context) error
	// Watch re-reads the filter document every interval. Stop via ctx.
	Watch(ctx context.Context, interval time.Duration)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Poller runs the sensor loop. Stop via context cancellation in main().
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
}

// Assets fetches dashboard static files through the offline cache.
type Assets interface {
	Fetch(ctx context.Context, path string) (*http.Response, error)
}

// RemoteStore is the cloud document store holding the sensor and filter documents.
type RemoteStore interface {
	SensorSource
	FilterStore
}

// Recorder collects poll and filter metrics.
type Recorder interface {
	PollRecorder
	FilterRecorder
}

// Dependencies are the non-repository collaborators of the services.
type Dependencies struct {
	Remote         RemoteStore
	Tracker        *status.Tracker
	Publisher      notify.Publisher
	Recorder       Recorder
	Log            *logger.Logger
	FilterLifeDays int
	AssetsOrigin   string
	AssetTransport http.RoundTripper
}

// Service aggregates all sub-services.
type Service struct {
	Monitoring
	Filter
	EventLog
	Poller
	Assets
}

// NewService wires the repository layer and remote collaborators into concrete services.
func NewService(repos *repository.Repository, deps Dependencies) *Service {
	return &Service{
		Monitoring: NewMonitoringService(deps.Tracker),
		Filter:     NewFilterService(deps.Remote, deps.Tracker, repos.EventRepo, deps.Recorder, deps.Log.Named("filter"), deps.FilterLifeDays),
		EventLog:   NewEventLogService(repos.EventRepo),
		Poller:     NewPollerService(deps.Remote, deps.Tracker, repos.EventRepo, deps.Publisher, deps.Recorder, deps.Log.Named("poller")),
		Assets:     NewAssetService(deps.AssetsOrigin, deps.AssetTransport),
	}
}
