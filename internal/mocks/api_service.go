package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/service"
)

// Registration is one call recorded by MockAPIService.RegisterAPI.
type Registration struct {
	API       domain.APIDraft
	Endpoints []domain.EndpointDraft
}

// MockAPIService implements service.APIService for handler tests.
type MockAPIService struct {
	RegisterAPIFn func(ctx context.Context, api domain.APIDraft, endpoints []domain.EndpointDraft) (uuid.UUID, error)
	ListAPIsFn    func(ctx context.Context) ([]domain.API, error)

	mu            sync.Mutex
	Registrations []Registration
}

var _ service.APIService = (*MockAPIService)(nil)

// RegisterAPI implements service.APIService. Without RegisterAPIFn it
// records the call and returns a fresh ID.
func (m *MockAPIService) RegisterAPI(
	ctx context.Context,
	api domain.APIDraft,
	endpoints []domain.EndpointDraft,
) (uuid.UUID, error) {
	m.mu.Lock()
	m.Registrations = append(m.Registrations, Registration{API: api, Endpoints: endpoints})
	m.mu.Unlock()

	if m.RegisterAPIFn != nil {
		return m.RegisterAPIFn(ctx, api, endpoints)
	}
	return uuid.New(), nil
}

// ListAPIs implements service.APIService.
func (m *MockAPIService) ListAPIs(ctx context.Context) ([]domain.API, error) {
	if m.ListAPIsFn != nil {
		return m.ListAPIsFn(ctx)
	}
	return []domain.API{}, nil
}
