package service

import (
	"context"
	"sync"
	"time"

	"sanisip/internal/logger"
	"sanisip/internal/models"
	"sanisip/internal/notify"
	"sanisip/internal/repository"
	"sanisip/internal/status"
)

// DefaultSensorInterval is the sensor poll period.
const DefaultSensorInterval = 5 * time.Second

// SensorSource reads the live sensor document.
type SensorSource interface {
	GetSensor(ctx context.Context) (models.SensorPayload, error)
}

// PollRecorder receives one observation per poll cycle.
type PollRecorder interface {
	ObservePoll(ok bool)
}

// PollerService fetches the sensor document on a fixed period and applies
// each result to the tracker.
type PollerService struct {
	source  SensorSource
	tracker *status.Tracker
	events  repository.EventRepo
	pub     notify.Publisher
	rec     PollRecorder
	log     *logger.Logger
	now     func() time.Time

	inflight sync.WaitGroup
}

// NewPollerService returns a poller. events, pub, rec and log may be nil.
func NewPollerService(source SensorSource, tracker *status.Tracker, events repository.EventRepo,
	pub notify.Publisher, rec PollRecorder, log *logger.Logger) *PollerService {
	if pub == nil {
		pub = notify.Noop{}
	}
	return &PollerService{
		source:  source,
		tracker: tracker,
		events:  events,
		pub:     pub,
		rec:     rec,
		log:     log,
		now:     time.Now,
	}
}

// Run polls immediately and then every interval until ctx is canceled.
// It returns once all in-flight cycles have finished.
func (s *PollerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSensorInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	s.runLoop(ctx, t.C)
}

// runLoop starts a cycle now and one per tick. Cycles are not de-duplicated:
// a slow fetch may overlap with the next one.
func (s *PollerService) runLoop(ctx context.Context, tick <-chan time.Time) {
	defer s.inflight.Wait()

	s.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			s.launch(ctx)
		}
	}
}

func (s *PollerService) launch(ctx context.Context) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		_ = s.PollOnce(ctx)
	}()
}

// PollOnce runs a single fetch-classify-publish cycle.
func (s *PollerService) PollOnce(ctx context.Context) error {
	payload, err := s.source.GetSensor(ctx)
	now := s.now()

	if err != nil {
		// Shutting down; not a connectivity change.
		if ctx.Err() != nil {
			return err
		}
		if s.rec != nil {
			s.rec.ObservePoll(false)
		}
		tr := s.tracker.RecordFailure(err, now)
		if s.log != nil {
			s.log.Errorw("sensor_poll_failed", "err", err)
		}
		if tr.ConnectivityChanged() {
			appendEvent(ctx, s.events, s.log, now, models.EventOffline, "Sensor feed went offline",
				map[string]any{"error": err.Error()})
		}
		return err
	}

	if s.rec != nil {
		s.rec.ObservePoll(true)
	}
	tr := s.tracker.RecordReading(payload, now)
	r := payload.Reading()

	if s.log != nil {
		s.log.Debugw("sensor_poll_ok", "tds", r.TDS, "ph", r.PH, "turbidity", r.Turbidity, "drinkable", tr.Drinkable)
	}
	if tr.ConnectivityChanged() {
		appendEvent(ctx, s.events, s.log, now, models.EventOnline, "Sensor feed is online", nil)
	}
	if tr.DrinkabilityChanged() {
		s.announce(ctx, tr, r, now)
	}
	return nil
}

// announce logs and publishes a drinkability verdict change.
func (s *PollerService) announce(ctx context.Context, tr status.Transition, r models.Reading, now time.Time) {
	desc := "Water is safe to drink"
	if !tr.Drinkable {
		desc = "Water is not safe to drink"
	}
	appendEvent(ctx, s.events, s.log, now, models.EventDrinkStatus, desc, map[string]any{
		"drinkable": tr.Drinkable,
		"tds":       r.TDS,
		"ph":        r.PH,
		"turbidity": r.Turbidity,
	})

	err := s.pub.PublishStatus(notify.StatusEvent{
		Timestamp: now,
		Drinkable: tr.Drinkable,
		TDS:       r.TDS,
		PH:        r.PH,
		Turbidity: r.Turbidity,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("status_publish_failed", "err", err, "drinkable", tr.Drinkable)
	}
}
