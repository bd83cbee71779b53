package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/store"
)

// MockAPIStore implements store.APIStore for testing
type MockAPIStore struct {
	CreateAPIFn      func(ctx context.Context, draft domain.APIDraft) (uuid.UUID, error)
	CreateEndpointFn func(ctx context.Context, apiID uuid.UUID, draft domain.EndpointDraft) (uuid.UUID, error)
	ListFn           func(ctx context.Context) ([]domain.API, error)

	mu        sync.Mutex
	APIs      []domain.API
	ListCalls int
	// TxCount counts WithTx calls so tests can assert writes went through a transaction.
	TxCount int
}

var _ store.APIStore = (*MockAPIStore)(nil)

// CreateAPI implements the APIStore interface
func (m *MockAPIStore) CreateAPI(ctx context.Context, draft domain.APIDraft) (uuid.UUID, error) {
	if m.CreateAPIFn != nil {
		return m.CreateAPIFn(ctx, draft)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	api := domain.API{
		ID:          uuid.New(),
		CompanyName: draft.CompanyName,
		BaseURL:     draft.BaseURL,
		Purpose:     draft.Purpose,
		APIKey:      draft.APIKey,
		Headers:     draft.Headers,
		AuthType:    draft.AuthType,
		Endpoints:   []domain.Endpoint{},
	}
	m.APIs = append(m.APIs, api)
	return api.ID, nil
}

// CreateEndpoint implements the APIStore interface
func (m *MockAPIStore) CreateEndpoint(ctx context.Context, apiID uuid.UUID, draft domain.EndpointDraft) (uuid.UUID, error) {
	if m.CreateEndpointFn != nil {
		return m.CreateEndpointFn(ctx, apiID, draft)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.APIs {
		if m.APIs[i].ID != apiID {
			continue
		}
		e := domain.Endpoint{
			ID:      uuid.New(),
			APIID:   apiID,
			Path:    draft.Path,
			Method:  draft.Method,
			Purpose: draft.Purpose,
			Params:  draft.Params,
			Headers: draft.Headers,
		}
		m.APIs[i].Endpoints = append(m.APIs[i].Endpoints, e)
		return e.ID, nil
	}
	return uuid.Nil, store.ErrInvalidEntity
}

// List implements the APIStore interface
func (m *MockAPIStore) List(ctx context.Context) ([]domain.API, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.API, len(m.APIs))
	copy(out, m.APIs)
	return out, nil
}

// WithTx implements the APIStore interface. The mock ignores tx.
func (m *MockAPIStore) WithTx(*sql.Tx) store.APIStore {
	m.mu.Lock()
	m.TxCount++
	m.mu.Unlock()
	return m
}
