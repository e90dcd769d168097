package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sanisip/internal/logger"
	"sanisip/internal/models"
	"sanisip/internal/repository"

	"github.com/google/uuid"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// Filter validation errors. Callers map them to client errors.
var (
	ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrUnknownEventType = errors.New("unknown event type")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	if eventType != "" && !models.IsEventType(eventType) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
	return from, to, eventType, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// appendEvent records a maintenance or connectivity event. Log failures never
// fail the operation that triggered them.
func appendEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, at time.Time, typ, desc string, meta any) {
	if repo == nil {
		return
	}
	err := repo.Append(ctx, models.Event{
		EventID:     uuid.NewString(),
		OccurredAt:  at.UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil && log != nil {
		log.Errorw("event_append_failed", "err", err, "type", typ)
	}
}
