package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/store"
)

// Registration outcomes reported to a RegistrationRecorder.
const (
	OutcomeCreated = "created"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

const (
	operationRegAPI  = "register_api"
	operationListAPI = "list_apis"
)

// APIService registers third-party APIs and lists them.
type APIService interface {
	// RegisterAPI validates the API and its endpoints and stores them in one
	// transaction. It returns the new API's ID.
	RegisterAPI(ctx context.Context, api domain.APIDraft, endpoints []domain.EndpointDraft) (uuid.UUID, error)

	// ListAPIs returns every registered API with its endpoints.
	ListAPIs(ctx context.Context) ([]domain.API, error)
}

// ListCache holds ListAPIs results per generation. Invalidate advances the
// generation, so a result stored under an older generation is never served.
// Implementations report a miss as (nil, false, nil).
type ListCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) ([]domain.API, bool, error)
	Set(ctx context.Context, gen int64, apis []domain.API) error
	Invalidate(ctx context.Context) error
}

// RegistrationRecorder observes registration attempts.
type RegistrationRecorder interface {
	RecordRegistration(outcome string, endpoints int)
}

// APIServiceImpl implements the APIService interface
type APIServiceImpl struct {
	apis     store.APIStore
	db       store.TxBeginner
	cache    ListCache
	recorder RegistrationRecorder
	logger   *slog.Logger
}

var _ APIService = (*APIServiceImpl)(nil)

// APIServiceOption configures optional collaborators.
type APIServiceOption func(*APIServiceImpl)

// WithListCache caches ListAPIs results in c.
func WithListCache(c ListCache) APIServiceOption {
	return func(s *APIServiceImpl) { s.cache = c }
}

// WithRegistrationRecorder reports registration outcomes to r.
func WithRegistrationRecorder(r RegistrationRecorder) APIServiceOption {
	return func(s *APIServiceImpl) { s.recorder = r }
}

// NewAPIService creates a new APIService. db is used to open the
// registration transaction.
func NewAPIService(apis store.APIStore, db store.TxBeginner, logger *slog.Logger, opts ...APIServiceOption) *APIServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	s := &APIServiceImpl{
		apis:   apis,
		db:     db,
		logger: logger.With("component", "api_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterAPI implements APIService.
func (s *APIServiceImpl) RegisterAPI(
	ctx context.Context,
	api domain.APIDraft,
	endpoints []domain.EndpointDraft,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validation normalizes drafts in place; work on a copy of the caller's slice.
	endpoints = slices.Clone(endpoints)
	if err := validateRegistration(&api, endpoints); err != nil {
		s.record(OutcomeInvalid, len(endpoints))
		return uuid.Nil, err
	}

	var apiID uuid.UUID
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.apis.WithTx(tx)

		id, err := txStore.CreateAPI(ctx, api)
		if err != nil {
			return fmt.Errorf("failed to insert api: %w", err)
		}
		for i, e := range endpoints {
			if _, err := txStore.CreateEndpoint(ctx, id, e); err != nil {
				return fmt.Errorf("failed to insert endpoint %d (%s %s): %w", i, e.Method, e.Path, err)
			}
		}
		apiID = id
		return nil
	})
	if err != nil {
		s.record(OutcomeFailed, len(endpoints))
		log.Error("api registration rolled back",
			"error", err,
			"company_name", api.CompanyName,
			"endpoint_count", len(endpoints))
		return uuid.Nil, NewServiceError(operationRegAPI, "failed to add API", err)
	}

	s.record(OutcomeCreated, len(endpoints))
	s.invalidateCache(ctx, log)

	log.Info("api registered",
		"api_id", apiID,
		"company_name", api.CompanyName,
		"endpoint_count", len(endpoints))
	return apiID, nil
}

// validateRegistration fills defaults and checks every draft. Endpoint field
// names are prefixed with their position so clients can locate the error.
func validateRegistration(api *domain.APIDraft, endpoints []domain.EndpointDraft) error {
	if err := api.Validate(); err != nil {
		return err
	}
	if len(endpoints) == 0 {
		return ErrNoEndpoints
	}
	for i := range endpoints {
		if err := endpoints[i].Validate(); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return domain.NewValidationError(fmt.Sprintf("endpoints[%d].%s", i, ve.Field), ve.Message, nil)
			}
			return err
		}
	}
	return nil
}

// ListAPIs implements APIService.
func (s *APIServiceImpl) ListAPIs(ctx context.Context) ([]domain.API, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The generation is read before the store so that a registration
	// committing mid-listing leaves this result under a stale generation.
	gen, cacheable := s.cacheGeneration(ctx, log)
	if cacheable {
		cached, ok, err := s.cache.Get(ctx, gen)
		switch {
		case err != nil:
			log.Warn("listing cache read failed", "error", err)
		case ok:
			log.Debug("listing served from cache", "count", len(cached))
			return cached, nil
		}
	}

	apis, err := s.apis.List(ctx)
	if err != nil {
		return nil, NewServiceError(operationListAPI, "failed to list APIs", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, gen, apis); err != nil {
			log.Warn("listing cache write failed", "error", err)
		}
	}
	return apis, nil
}

func (s *APIServiceImpl) cacheGeneration(ctx context.Context, log *slog.Logger) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		log.Warn("listing cache generation read failed", "error", err)
		return 0, false
	}
	return gen, true
}

func (s *APIServiceImpl) invalidateCache(ctx context.Context, log *slog.Logger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("listing cache invalidation failed", "error", err)
	}
}

func (s *APIServiceImpl) record(outcome string, endpoints int) {
	if s.recorder != nil {
		s.recorder.RecordRegistration(outcome, endpoints)
	}
}
