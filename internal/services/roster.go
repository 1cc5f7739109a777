package services

import (
	"context"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"delivery-ops-service/internal/ports"
	"fmt"

	"go.uber.org/zap"
)

// RosterView is what the driver management screen renders.
// Error is the viewer's last page error and is empty when none was recorded.
type RosterView struct {
	ShowInactive bool
	Drivers      []*domain.DriverProfile
	Error        string
}

// RosterService backs the driver management screen.
type RosterService struct {
	Drivers ports.DriverRepository
	Errors  ports.PageErrorStore
	Log     *zap.Logger
}

// Roster fetches every driver and applies the inactive filter.
// A fetch failure becomes the page error and leaves the table empty.
func (s *RosterService) Roster(ctx context.Context, viewerID string, showInactive bool) RosterView {
	view := RosterView{ShowInactive: showInactive, Drivers: []*domain.DriverProfile{}}

	drivers, err := s.Drivers.ListRoster(ctx)
	if err != nil {
		s.fail(ctx, viewerID, fmt.Errorf("fetch drivers: %w", err))
	} else {
		view.Drivers = domain.FilterRoster(drivers, showInactive)
	}

	view.Error = s.pageError(ctx, viewerID)
	return view
}

// FilteredDrivers returns the filtered roster without the page error, for exports.
func (s *RosterService) FilteredDrivers(ctx context.Context, viewerID string, showInactive bool) ([]*domain.DriverProfile, error) {
	drivers, err := s.Drivers.ListRoster(ctx)
	if err != nil {
		err = fmt.Errorf("fetch drivers: %w", err)
		s.fail(ctx, viewerID, err)
		return nil, err
	}
	return domain.FilterRoster(drivers, showInactive), nil
}

// ToggleActive sets the driver's active flag to !current, then re-fetches the
// whole roster.
func (s *RosterService) ToggleActive(ctx context.Context, viewerID, driverID string, current, showInactive bool) (RosterView, error) {
	if err := s.Drivers.SetActive(ctx, driverID, !current); err != nil {
		err = fmt.Errorf("toggle driver status: %w", err)
		s.fail(ctx, viewerID, err)
		return RosterView{}, err
	}

	return s.Roster(ctx, viewerID, showInactive), nil
}

// UpdateCDL writes the CDL fields of a driver, then re-fetches the whole roster.
// Number and expiration are cleared unless hasCDL is set and both are given.
func (s *RosterService) UpdateCDL(ctx context.Context, viewerID, driverID string, hasCDL bool, number, expiration string, showInactive bool) (RosterView, error) {
	u := domain.NewCDLUpdate(hasCDL, number, expiration)
	if err := s.Drivers.UpdateCDL(ctx, driverID, u); err != nil {
		err = fmt.Errorf("update driver cdl: %w", err)
		s.fail(ctx, viewerID, err)
		return RosterView{}, err
	}

	return s.Roster(ctx, viewerID, showInactive), nil
}

func (s *RosterService) fail(ctx context.Context, viewerID string, err error) {
	s.Log.Error("roster operation failed",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("viewer_id", viewerID),
		zap.Error(err),
	)
	if setErr := s.Errors.Set(ctx, viewerID, err.Error()); setErr != nil {
		s.Log.Error("record page error failed", zap.String("viewer_id", viewerID), zap.Error(setErr))
	}
}

func (s *RosterService) pageError(ctx context.Context, viewerID string) string {
	msg, err := s.Errors.Get(ctx, viewerID)
	if err != nil {
		s.Log.Error("read page error failed", zap.String("viewer_id", viewerID), zap.Error(err))
		return ""
	}
	return msg
}
