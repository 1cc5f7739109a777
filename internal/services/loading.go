package services

import (
	"context"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"delivery-ops-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LoadingService runs the loading form workflow: open a form for an upcoming
// run, record loaded quantities, then complete or cancel.
type LoadingService struct {
	Drivers  ports.DriverRepository
	Runs     ports.RunRepository
	Supplies ports.SupplyRepository
	Loadings ports.LoadingRepository
	Forms    ports.LoadingFormStore
	Log      *zap.Logger
	Now      func() time.Time
}

func (s *LoadingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StartLoading makes runID the active run of userID and opens a fresh form.
// The run must be Upcoming. When required quantities cannot be read the form
// opens with them at zero.
func (s *LoadingService) StartLoading(ctx context.Context, userID, runID string) (*domain.LoadingForm, error) {
	driverID, err := s.Drivers.DriverIDForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("start loading: %w", err)
	}

	run, err := s.Runs.GetRunForDriver(ctx, driverID, runID)
	if err != nil {
		return nil, fmt.Errorf("start loading: %w", err)
	}
	if !run.CanStartLoading() {
		return nil, fmt.Errorf("start loading: run %s is %s: %w", run.ID, run.Status, domain.ErrActionDisabled)
	}

	required, err := s.Supplies.RequiredForStore(ctx, run.StoreID)
	if err != nil {
		s.Log.Error("error fetching required quantities",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("run_id", run.ID),
			zap.String("store_id", run.StoreID),
			zap.Error(err),
		)
		required = domain.SupplyQuantities{}
	}

	form := domain.NewLoadingForm(run, required, s.now())
	if err := s.Forms.Save(ctx, userID, form); err != nil {
		return nil, fmt.Errorf("start loading: save form: %w", err)
	}

	return form, nil
}

// CurrentForm returns the open form of userID.
func (s *LoadingService) CurrentForm(ctx context.Context, userID string) (*domain.LoadingForm, error) {
	form, err := s.Forms.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("current form: %w", err)
	}
	return form, nil
}

// SetQuantity coerces raw to an integer and stores it as the loaded quantity
// of field.
func (s *LoadingService) SetQuantity(ctx context.Context, userID, field, raw string) (*domain.LoadingForm, error) {
	f, err := domain.ParseSupplyField(field)
	if err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}

	form, err := s.Forms.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}

	if err := form.Set(f, domain.ParseQuantity(raw)); err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}

	if err := s.Forms.Save(ctx, userID, form); err != nil {
		return nil, fmt.Errorf("set quantity: save form: %w", err)
	}

	return form, nil
}

// Complete persists the loaded quantities, marks the run Preloaded and closes
// the form.
func (s *LoadingService) Complete(ctx context.Context, userID string) (*domain.LoadingRecord, error) {
	form, err := s.Forms.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("complete loading: %w", err)
	}

	driverID, err := s.Drivers.DriverIDForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("complete loading: %w", err)
	}

	rec := domain.LoadingRecord{
		RunID:       form.RunID,
		DriverID:    driverID,
		Loaded:      form.Loaded,
		CompletedAt: s.now(),
	}
	if err := s.Loadings.CompleteLoading(ctx, rec); err != nil {
		return nil, fmt.Errorf("complete loading: %w", err)
	}

	// The record is already stored; a stale form only lingers until its TTL.
	if err := s.Forms.Delete(ctx, userID); err != nil {
		s.Log.Warn("close loading form failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("run_id", form.RunID),
			zap.Error(err),
		)
	}

	return &rec, nil
}

// Cancel discards the open form. Required quantities and the run are untouched.
func (s *LoadingService) Cancel(ctx context.Context, userID string) error {
	if _, err := s.Forms.Get(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNoOpenForm) {
			return nil
		}
		return fmt.Errorf("cancel loading: %w", err)
	}

	if err := s.Forms.Delete(ctx, userID); err != nil {
		return fmt.Errorf("cancel loading: %w", err)
	}
	return nil
}
