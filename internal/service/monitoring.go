package service

import (
	"context"

	"sanisip/internal/status"
)

type MonitoringService struct {
	tracker *status.Tracker
}

func NewMonitoringService(tracker *status.Tracker) *MonitoringService {
	return &MonitoringService{tracker: tracker}
}

// GetSnapshot returns the current dashboard state. Before the first poll
// completes this is a disconnected snapshot with no reading.
func (s *MonitoringService) GetSnapshot(ctx context.Context) (status.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return status.Snapshot{}, err
	}
	return s.tracker.Snapshot(), nil
}
