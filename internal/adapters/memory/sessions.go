package memory

import (
	"context"
	"delivery-ops-service/internal/domain"
	"fmt"
	"sync"
)

// LoadingFormStore keeps open loading forms in a map.
type LoadingFormStore struct {
	mu    sync.Mutex
	forms map[string]domain.LoadingForm

	GetErr  error
	SaveErr error
}

func NewLoadingFormStore() *LoadingFormStore {
	return &LoadingFormStore{forms: map[string]domain.LoadingForm{}}
}

func (s *LoadingFormStore) Get(ctx context.Context, userID string) (*domain.LoadingForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	f, ok := s.forms[userID]
	if !ok {
		return nil, fmt.Errorf("loading form for user %s: %w", userID, domain.ErrNoOpenForm)
	}
	return &f, nil
}

func (s *LoadingFormStore) Save(ctx context.Context, userID string, form *domain.LoadingForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.forms[userID] = *form
	return nil
}

func (s *LoadingFormStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.forms, userID)
	return nil
}

// PageErrorStore keeps the last page error per viewer.
type PageErrorStore struct {
	mu     sync.Mutex
	errors map[string]string
}

func NewPageErrorStore() *PageErrorStore {
	return &PageErrorStore{errors: map[string]string{}}
}

func (s *PageErrorStore) Get(ctx context.Context, viewerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[viewerID], nil
}

func (s *PageErrorStore) Set(ctx context.Context, viewerID string, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[viewerID] = msg
	return nil
}
