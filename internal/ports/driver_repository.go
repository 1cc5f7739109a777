package ports

import (
	"context"
	"delivery-ops-service/internal/domain"
)

// Port: a boundary for reading and updating driver records.
type DriverRepository interface {
	// Resolve the driver record linked to an authenticated user.
	// Returns domain.ErrDriverNotFound when no driver is linked.
	DriverIDForUser(ctx context.Context, userID string) (string, error)
	// Return every driver profile, newest first.
	ListRoster(ctx context.Context) ([]*domain.DriverProfile, error)
	// Set the active flag of one driver.
	SetActive(ctx context.Context, driverID string, active bool) error
	// Write the CDL columns of one driver.
	UpdateCDL(ctx context.Context, driverID string, u domain.CDLUpdate) error
}
