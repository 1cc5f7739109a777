package ports

import (
	"context"
	"delivery-ops-service/internal/domain"
)

// Port: the open loading form of each user.
type LoadingFormStore interface {
	// Returns domain.ErrNoOpenForm when the user has no open form.
	Get(ctx context.Context, userID string) (*domain.LoadingForm, error)
	Save(ctx context.Context, userID string, form *domain.LoadingForm) error
	Delete(ctx context.Context, userID string) error
}

// Port: the last roster page error shown to each viewer.
// An error stays until a newer one replaces it.
type PageErrorStore interface {
	// Returns "" when no error was recorded.
	Get(ctx context.Context, viewerID string) (string, error)
	Set(ctx context.Context, viewerID string, msg string) error
}
