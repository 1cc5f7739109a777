package memory

import (
	"context"
	"delivery-ops-service/internal/domain"
	"fmt"
	"slices"
	"sync"
)

// DriverRepository is an in-memory DriverRepository for tests and local demos.
// Set the *Err fields to make the matching call fail.
type DriverRepository struct {
	mu      sync.Mutex
	drivers []*domain.DriverProfile

	LookupErr error
	ListErr   error
	UpdateErr error

	ListCalls     int
	ActiveUpdates []ActiveUpdate
	CDLUpdates    []CDLCall
}

type ActiveUpdate struct {
	DriverID string
	Active   bool
}

type CDLCall struct {
	DriverID string
	Update   domain.CDLUpdate
}

func NewDriverRepository(drivers ...*domain.DriverProfile) *DriverRepository {
	return &DriverRepository{drivers: drivers}
}

func (r *DriverRepository) DriverIDForUser(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.LookupErr != nil {
		return "", r.LookupErr
	}
	for _, d := range r.drivers {
		if d.UserID == userID {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("driver for user %s: %w", userID, domain.ErrDriverNotFound)
}

// ListRoster returns copies sorted newest first.
func (r *DriverRepository) ListRoster(ctx context.Context) ([]*domain.DriverProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ListCalls++
	if r.ListErr != nil {
		return nil, r.ListErr
	}

	out := make([]*domain.DriverProfile, 0, len(r.drivers))
	for _, d := range r.drivers {
		c := *d
		out = append(out, &c)
	}
	slices.SortStableFunc(out, func(a, b *domain.DriverProfile) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *DriverRepository) SetActive(ctx context.Context, driverID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ActiveUpdates = append(r.ActiveUpdates, ActiveUpdate{DriverID: driverID, Active: active})
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	d := r.find(driverID)
	if d == nil {
		return fmt.Errorf("set active: driver %s: %w", driverID, domain.ErrDriverNotFound)
	}
	d.IsActive = active
	return nil
}

func (r *DriverRepository) UpdateCDL(ctx context.Context, driverID string, u domain.CDLUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CDLUpdates = append(r.CDLUpdates, CDLCall{DriverID: driverID, Update: u})
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	d := r.find(driverID)
	if d == nil {
		return fmt.Errorf("update cdl: driver %s: %w", driverID, domain.ErrDriverNotFound)
	}
	d.HasCDL = u.HasCDL
	d.CDLNumber = u.Number
	d.CDLExpirationDate = u.ExpirationDate
	return nil
}

// Driver returns the stored record, for assertions.
func (r *DriverRepository) Driver(id string) *domain.DriverProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *DriverRepository) find(id string) *domain.DriverProfile {
	for _, d := range r.drivers {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// RunRepository is an in-memory RunRepository. Completed runs are hidden,
// matching the active_delivery_runs view.
type RunRepository struct {
	mu   sync.Mutex
	runs []*domain.DeliveryRun

	ListErr error
	GetErr  error
}

func NewRunRepository(runs ...*domain.DeliveryRun) *RunRepository {
	return &RunRepository{runs: runs}
}

func (r *RunRepository) ListRunsForDriver(ctx context.Context, driverID string) ([]*domain.DeliveryRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]*domain.DeliveryRun, 0, len(r.runs))
	for _, run := range r.runs {
		if run.DriverID == driverID && run.Status != domain.StatusCompleted {
			c := *run
			out = append(out, &c)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.DeliveryRun) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (r *RunRepository) GetRunForDriver(ctx context.Context, driverID, runID string) (*domain.DeliveryRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	for _, run := range r.runs {
		if run.ID == runID && run.DriverID == driverID && run.Status != domain.StatusCompleted {
			c := *run
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get run %s: %w", runID, domain.ErrRunNotFound)
}

// SetStatus changes a stored run, for the loading repository and tests.
func (r *RunRepository) SetStatus(runID string, status domain.RunStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, run := range r.runs {
		if run.ID == runID {
			run.Status = status
			return true
		}
	}
	return false
}

func (r *RunRepository) Status(runID string) domain.RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, run := range r.runs {
		if run.ID == runID {
			return run.Status
		}
	}
	return ""
}

// SupplyRepository maps store ids to required quantities.
type SupplyRepository struct {
	Required map[string]domain.SupplyQuantities
	Err      error
}

func (r *SupplyRepository) RequiredForStore(ctx context.Context, storeID string) (domain.SupplyQuantities, error) {
	if r.Err != nil {
		return domain.SupplyQuantities{}, r.Err
	}
	q, ok := r.Required[storeID]
	if !ok {
		return domain.SupplyQuantities{}, fmt.Errorf("required quantities: no row for store %s", storeID)
	}
	return q, nil
}

// LoadingRepository records completed forms and advances runs held by Runs.
type LoadingRepository struct {
	mu      sync.Mutex
	Runs    *RunRepository
	Records map[string]domain.LoadingRecord
	Err     error
}

func NewLoadingRepository(runs *RunRepository) *LoadingRepository {
	return &LoadingRepository{Runs: runs, Records: map[string]domain.LoadingRecord{}}
}

func (r *LoadingRepository) CompleteLoading(ctx context.Context, rec domain.LoadingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if r.Runs != nil {
		if r.Runs.Status(rec.RunID) != domain.StatusUpcoming {
			return fmt.Errorf("complete loading: run %s is no longer upcoming: %w", rec.RunID, domain.ErrActionDisabled)
		}
		r.Runs.SetStatus(rec.RunID, domain.StatusPreloaded)
	}
	r.Records[rec.RunID] = rec
	return nil
}
