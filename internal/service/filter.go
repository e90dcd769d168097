package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"sanisip/internal/logger"
	"sanisip/internal/models"
	"sanisip/internal/repository"
	"sanisip/internal/status"
)

const (
	DefaultFilterLifeDays = 90
	DefaultFilterInterval = time.Hour

	filterWarningDays = 10

	opStartDate = "start_date"
	opReset     = "reset"
)

var (
	ErrWriteInProgress      = errors.New("a filter update is already in progress")
	ErrConfirmationRequired = errors.New("resetting filter days requires confirmation")
	ErrInvalidStartDate     = errors.New("invalid start date: use YYYY-MM-DD")
	ErrWriteFailed          = errors.New("filter update failed")
)

// FilterStore reads and writes the remote filter document.
type FilterStore interface {
	GetFilter(ctx context.Context) (models.FilterState, error)
	PutFilter(ctx context.Context, f models.FilterState) error
	PatchFilter(ctx context.Context, fields map[string]any) error
}

// FilterRecorder receives filter status and write outcomes.
type FilterRecorder interface {
	SetFilterDaysLeft(days int)
	ObserveFilterWrite(op string, err error)
}

// Compute derives the display status from the stored usage counter.
// A non-positive life falls back to DefaultFilterLifeDays.
func Compute(state models.FilterState, life int) models.FilterStatus {
	if life <= 0 {
		life = DefaultFilterLifeDays
	}
	used := state.DaysUsed
	if used < 0 {
		used = 0
	}

	fs := models.FilterStatus{
		DaysUsed: used,
		DaysLeft: max(life-used, 0),
		Percent:  min(int(math.Round(float64(used)/float64(life)*100)), 100),
	}
	if state.StartDate != nil {
		fs.StartDate = state.StartDate.Format(models.DateLayout)
	}
	fs.Expired = fs.DaysLeft == 0
	fs.Warning = fs.DaysLeft <= filterWarningDays && !fs.Expired

	switch {
	case fs.Expired:
		fs.Severity = models.SeverityDanger
		fs.Banner = "Filter expired. Replace now"
		fs.Badge = "Replace Now"
	case fs.Warning:
		unit := "days"
		if fs.DaysLeft == 1 {
			unit = "day"
		}
		fs.Severity = models.SeverityCaution
		fs.Banner = fmt.Sprintf("Replace filter soon: %d %s left", fs.DaysLeft, unit)
		fs.Badge = fmt.Sprintf("%dd left", fs.DaysLeft)
	default:
		fs.Severity = models.SeverityOK
		fs.Badge = "Good"
	}
	return fs
}

// FilterService tracks filter life and performs the two maintenance writes.
type FilterService struct {
	store   FilterStore
	tracker *status.Tracker
	events  repository.EventRepo
	rec     FilterRecorder
	log     *logger.Logger
	life    int
	now     func() time.Time

	// writeMu serializes writes; a second write fails fast instead of queueing.
	writeMu sync.Mutex
}

// NewFilterService returns a filter tracker. events, rec and log may be nil.
func NewFilterService(store FilterStore, tracker *status.Tracker, events repository.EventRepo,
	rec FilterRecorder, log *logger.Logger, lifeDays int) *FilterService {
	if lifeDays <= 0 {
		lifeDays = DefaultFilterLifeDays
	}
	return &FilterService{
		store:   store,
		tracker: tracker,
		events:  events,
		rec:     rec,
		log:     log,
		life:    lifeDays,
		now:     time.Now,
	}
}

// Watch reads the filter document immediately and then every interval until ctx is canceled.
func (s *FilterService) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFilterInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	s.watchLoop(ctx, t.C)
}

func (s *FilterService) watchLoop(ctx context.Context, tick <-chan time.Time) {
	_ = s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			_ = s.Refresh(ctx)
		}
	}
}

// Refresh reads the filter document and recomputes the status. On failure
// the last known status is kept.
func (s *FilterService) Refresh(ctx context.Context) error {
	state, err := s.store.GetFilter(ctx)
	if err != nil {
		if s.log != nil && ctx.Err() == nil {
			s.log.Errorw("filter_read_failed", "err", err)
		}
		return err
	}
	fs := Compute(state, s.life)
	s.tracker.SetFilter(fs, s.now())
	if s.rec != nil {
		s.rec.SetFilterDaysLeft(fs.DaysLeft)
	}
	return nil
}

// Status returns the last computed filter status.
func (s *FilterService) Status(ctx context.Context) (models.FilterStatus, error) {
	if err := ctx.Err(); err != nil {
		return models.FilterStatus{}, err
	}
	return s.tracker.Filter(), nil
}

// SetStartDate replaces the filter document with the new date and a zero counter.
func (s *FilterService) SetStartDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return ErrInvalidStartDate
	}
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return s.write(ctx, opStartDate, func() error {
		return s.store.PutFilter(ctx, models.FilterState{StartDate: &day, DaysUsed: 0})
	}, func(prev models.FilterStatus) {
		appendEvent(ctx, s.events, s.log, s.now(), models.EventFilterStartDate,
			"Filter start date set to "+day.Format(models.DateLayout), map[string]any{
				"start_date":          day.Format(models.DateLayout),
				"previous_start_date": prev.StartDate,
				"previous_days_used":  prev.DaysUsed,
			})
	})
}

// ResetDaysUsed zeroes the usage counter, keeping the start date.
func (s *FilterService) ResetDaysUsed(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.write(ctx, opReset, func() error {
		return s.store.PatchFilter(ctx, map[string]any{"FilterDaysUsed": 0})
	}, func(prev models.FilterStatus) {
		appendEvent(ctx, s.events, s.log, s.now(), models.EventFilterReset,
			"Filter days used reset", map[string]any{
				"previous_days_used": prev.DaysUsed,
			})
	})
}

// write runs one remote write under the write lock. On success the filter
// document is re-read before the event is recorded.
func (s *FilterService) write(ctx context.Context, op string, do func() error, onSuccess func(prev models.FilterStatus)) error {
	if !s.writeMu.TryLock() {
		return ErrWriteInProgress
	}
	defer s.writeMu.Unlock()

	prev := s.tracker.Filter()
	err := do()
	if s.rec != nil {
		s.rec.ObserveFilterWrite(op, err)
	}
	if err != nil {
		if s.log != nil {
			s.log.Errorw("filter_write_failed", "op", op, "err", err)
		}
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if s.log != nil {
		s.log.Infow("filter_write_ok", "op", op)
	}
	_ = s.Refresh(ctx)
	onSuccess(prev)
	return nil
}
