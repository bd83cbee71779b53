package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
)

// APIStore defines persistence for registered APIs and their endpoints.
type APIStore interface {
	// CreateAPI inserts one API row and returns its generated ID.
	CreateAPI(ctx context.Context, draft domain.APIDraft) (uuid.UUID, error)

	// CreateEndpoint inserts one endpoint row under apiID and returns its ID.
	// Returns an error wrapping ErrInvalidEntity if apiID does not exist.
	CreateEndpoint(ctx context.Context, apiID uuid.UUID, draft domain.EndpointDraft) (uuid.UUID, error)

	// List returns every API with its endpoints in a single query.
	// An API without endpoints has an empty, non-nil Endpoints slice.
	List(ctx context.Context) ([]domain.API, error)

	// WithTx returns an APIStore that runs its queries on tx.
	WithTx(tx *sql.Tx) APIStore
}
