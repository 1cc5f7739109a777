package services

import (
	"context"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"delivery-ops-service/internal/ports"

	"go.uber.org/zap"
)

// RunService backs the driver dashboard run list.
type RunService struct {
	Drivers ports.DriverRepository
	Runs    ports.RunRepository
	Log     *zap.Logger
}

// ListRuns returns the active runs of the driver linked to userID, oldest
// first. Failures are logged and produce an empty list; nothing is retried.
func (s *RunService) ListRuns(ctx context.Context, userID string) []*domain.DeliveryRun {
	driverID, err := s.Drivers.DriverIDForUser(ctx, userID)
	if err != nil {
		s.Log.Error("error fetching runs",
			zap.String("op", "runs.list"),
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("user_id", userID),
			zap.String("step", "driver lookup"),
			zap.Error(err),
		)
		return []*domain.DeliveryRun{}
	}

	runs, err := s.Runs.ListRunsForDriver(ctx, driverID)
	if err != nil {
		s.Log.Error("error fetching runs",
			zap.String("op", "runs.list"),
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("driver_id", driverID),
			zap.String("step", "run query"),
			zap.Error(err),
		)
		return []*domain.DeliveryRun{}
	}
	if runs == nil {
		runs = []*domain.DeliveryRun{}
	}

	return runs
}
