package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/store"
)

// PostgresAPIStore implements the store.APIStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAPIStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAPIStore creates a new PostgreSQL implementation of the APIStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAPIStore(db store.DBTX, logger *slog.Logger) *PostgresAPIStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAPIStore{
		db:     db,
		logger: logger.With(slog.String("component", "api_store")),
	}
}

// Ensure PostgresAPIStore implements store.APIStore interface
var _ store.APIStore = (*PostgresAPIStore)(nil)

// WithTx implements store.APIStore.WithTx
func (s *PostgresAPIStore) WithTx(tx *sql.Tx) store.APIStore {
	return &PostgresAPIStore{db: tx, logger: s.logger}
}

// CreateAPI implements store.APIStore.CreateAPI
func (s *PostgresAPIStore) CreateAPI(ctx context.Context, draft domain.APIDraft) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	headers, err := marshalMapping(draft.Headers, domain.Headers{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode api headers: %w", err)
	}

	query := `
		INSERT INTO apis (company_name, base_url, purpose, api_key, headers, auth_type)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)
		RETURNING id
	`
	var id uuid.UUID
	err = s.db.QueryRowContext(ctx, query,
		draft.CompanyName,
		draft.BaseURL,
		draft.Purpose,
		draft.APIKey,
		headers,
		draft.AuthType,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert api",
			slog.String("error", err.Error()),
			slog.String("company_name", draft.CompanyName))
		return uuid.Nil, MapError(err)
	}

	log.Debug("api inserted", slog.String("api_id", id.String()))
	return id, nil
}

// CreateEndpoint implements store.APIStore.CreateEndpoint
func (s *PostgresAPIStore) CreateEndpoint(ctx context.Context, apiID uuid.UUID, draft domain.EndpointDraft) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params, err := marshalMapping(draft.Params, domain.Params{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode endpoint params: %w", err)
	}
	headers, err := marshalMapping(draft.Headers, domain.Headers{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode endpoint headers: %w", err)
	}

	query := `
		INSERT INTO endpoints (api_id, path, method, purpose, params, headers)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb)
		RETURNING id
	`
	var id uuid.UUID
	err = s.db.QueryRowContext(ctx, query,
		apiID,
		draft.Path,
		draft.Method,
		draft.Purpose,
		params,
		headers,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert endpoint",
			slog.String("error", err.Error()),
			slog.String("api_id", apiID.String()),
			slog.String("method", draft.Method),
			slog.String("path", draft.Path))
		return uuid.Nil, MapError(err)
	}

	log.Debug("endpoint inserted",
		slog.String("api_id", apiID.String()),
		slog.String("endpoint_id", id.String()))
	return id, nil
}

// listAPIsQuery aggregates endpoints per API. The FILTER clause drops the
// all-NULL row LEFT JOIN produces for an API without endpoints, and COALESCE
// turns the resulting NULL aggregate into an empty array.
const listAPIsQuery = `
	SELECT
		a.id, a.company_name, a.base_url, a.purpose, a.api_key, a.headers,
		a.auth_type, a.created_at, a.updated_at,
		COALESCE(
			jsonb_agg(
				jsonb_build_object(
					'id', e.id,
					'api_id', e.api_id,
					'path', e.path,
					'method', e.method,
					'purpose', e.purpose,
					'params', e.params,
					'headers', e.headers,
					'created_at', e.created_at,
					'updated_at', e.updated_at
				) ORDER BY e.created_at, e.id
			) FILTER (WHERE e.id IS NOT NULL),
			'[]'::jsonb
		) AS endpoints
	FROM apis a
	LEFT JOIN endpoints e ON e.api_id = a.id
	GROUP BY a.id
	ORDER BY a.created_at, a.id
`

// List implements store.APIStore.List
func (s *PostgresAPIStore) List(ctx context.Context) ([]domain.API, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listAPIsQuery)
	if err != nil {
		log.Error("failed to list apis", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	apis := []domain.API{}
	for rows.Next() {
		var (
			api       domain.API
			headers   []byte
			endpoints []byte
		)
		if err := rows.Scan(
			&api.ID,
			&api.CompanyName,
			&api.BaseURL,
			&api.Purpose,
			&api.APIKey,
			&headers,
			&api.AuthType,
			&api.CreatedAt,
			&api.UpdatedAt,
			&endpoints,
		); err != nil {
			log.Error("failed to scan api row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan api row: %w", err)
		}

		if err := json.Unmarshal(headers, &api.Headers); err != nil {
			return nil, fmt.Errorf("failed to decode headers for api %s: %w", api.ID, err)
		}
		if api.Headers == nil {
			api.Headers = domain.Headers{}
		}

		api.Endpoints, err = decodeEndpoints(endpoints)
		if err != nil {
			return nil, fmt.Errorf("failed to decode endpoints for api %s: %w", api.ID, err)
		}
		apis = append(apis, api)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating api rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed apis", slog.Int("count", len(apis)))
	return apis, nil
}

// decodeEndpoints parses the aggregated endpoint array. Entries without an ID
// are join placeholders and are skipped.
func decodeEndpoints(raw []byte) ([]domain.Endpoint, error) {
	endpoints := []domain.Endpoint{}
	if len(raw) == 0 {
		return endpoints, nil
	}

	var decoded []domain.Endpoint
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	for _, e := range decoded {
		if e.ID == uuid.Nil {
			continue
		}
		if e.Params == nil {
			e.Params = domain.Params{}
		}
		if e.Headers == nil {
			e.Headers = domain.Headers{}
		}
		endpoints = append(endpoints, e)
	}
	return endpoints, nil
}

// marshalMapping encodes m as JSON text for a jsonb column, substituting
// empty when m is nil so the column never stores null.
func marshalMapping[M ~map[string]V, V any](m M, empty M) (string, error) {
	if m == nil {
		m = empty
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
