package domain

import "time"

// RunStatus is the informal lifecycle state of a delivery run.
// Transitions are driven by the driver dashboard buttons.
type RunStatus string

const (
	StatusUpcoming  RunStatus = "Upcoming"
	StatusPreloaded RunStatus = "Preloaded"
	StatusInTransit RunStatus = "in_transit"
	StatusCompleted RunStatus = "Completed"
)

// RunType labels the kind of trip. Values come from the dispatch system.
type RunType string

// Store is the destination of a run.
type Store struct {
	ID      string
	Name    string
	Address *string
}

// Represents a scheduled delivery trip assigned to one driver and one store.
// Runs are created by dispatch; this service only reads them, except for the
// Upcoming -> Preloaded step taken when loading completes.
type DeliveryRun struct {
	ID        string
	DriverID  string
	StoreID   string
	StoreName string
	RunType   RunType
	Status    RunStatus
	StartTime *time.Time
	CreatedAt time.Time
	Store     *Store
}

type RunActionName string

const (
	ActionStartLoading RunActionName = "start_loading"
	ActionDepart       RunActionName = "depart"
	ActionComplete     RunActionName = "complete"
)

// RunAction describes one button on a run card.
// Wired is false for placeholders that have no server-side effect yet.
type RunAction struct {
	Name    RunActionName
	Label   string
	Enabled bool
	Wired   bool
}

// RunActions returns the three run card actions in display order.
// Each one is enabled only in exactly one status.
func RunActions(status RunStatus) []RunAction {
	return []RunAction{
		{Name: ActionStartLoading, Label: "Start Loading", Enabled: status == StatusUpcoming, Wired: true},
		{Name: ActionDepart, Label: "Depart", Enabled: status == StatusPreloaded},
		{Name: ActionComplete, Label: "Complete", Enabled: status == StatusInTransit},
	}
}

// CanStartLoading reports whether the Start Loading action is enabled for the run.
func (r *DeliveryRun) CanStartLoading() bool {
	return r.Status == StatusUpcoming
}
