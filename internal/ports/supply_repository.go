package ports

import (
	"context"
	"delivery-ops-service/internal/domain"
)

// Port: required supply quantities per store.
type SupplyRepository interface {
	RequiredForStore(ctx context.Context, storeID string) (domain.SupplyQuantities, error)
}

// Port: persistence of completed loading forms.
type LoadingRepository interface {
	// Store the loaded quantities of a run and mark the run Preloaded.
	CompleteLoading(ctx context.Context, rec domain.LoadingRecord) error
}
