package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sanisip/internal/models"
)

func TestMonitoringService_GetSnapshot(t *testing.T) {
	t.Parallel()

	tracker := newTestTracker()
	svc := NewMonitoringService(tracker)

	snap, err := svc.GetSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if snap.Connected || snap.HasData {
		t.Fatalf("expected a disconnected baseline before the first poll: %+v", snap)
	}

	tracker.RecordReading(models.SensorPayload{TDS: 150, PH: 6.8, Turbidity: 0.7}, time.Now())
	snap, _ = svc.GetSnapshot(context.Background())
	if !snap.Connected || snap.TDS.Result.Tag != "Low" || snap.PH.Result.Tag != "Neutral" || snap.Turbidity.Result.Tag != "Slight" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestMonitoringService_CanceledContext(t *testing.T) {
	t.Parallel()

	svc := NewMonitoringService(newTestTracker())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.GetSnapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
