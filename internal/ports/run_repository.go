package ports

import (
	"context"
	"delivery-ops-service/internal/domain"
)

// Port: a boundary for reading delivery runs.
type RunRepository interface {
	// Return the active runs of a driver with their store, oldest first.
	ListRunsForDriver(ctx context.Context, driverID string) ([]*domain.DeliveryRun, error)
	// Return one active run owned by the driver.
	// Returns domain.ErrRunNotFound when the run does not exist or belongs to someone else.
	GetRunForDriver(ctx context.Context, driverID, runID string) (*domain.DeliveryRun, error)
}
