package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/normalize"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/redact"
	"github.com/tenantbot/api-registry/internal/service"
)

// APIHandler serves API registration and listing.
type APIHandler struct {
	apis   service.APIService
	logger *slog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(apis service.APIService, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		apis:   apis,
		logger: logger.With("component", "api_handler"),
	}
}

// Add handles POST /api/add.
func (h *APIHandler) Add(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddAPIRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	api, endpoints := buildDrafts(r.Context(), &req)
	log.Debug("registering api",
		"company_name", api.CompanyName,
		"headers", redact.Headers(api.Headers),
		"endpoint_count", len(endpoints))

	id, err := h.apis.RegisterAPI(r.Context(), api, endpoints)
	if err != nil {
		var svcErr *service.ServiceError
		if errors.As(err, &svcErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to add API: "+redact.Error(svcErr.Err), err)
			return
		}
		HandleAPIError(w, r, err, "Failed to add API")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AddAPIResponse{
		Success: true,
		APIID:   id.String(),
	})
}

// All handles GET /api/all.
func (h *APIHandler) All(w http.ResponseWriter, r *http.Request) {
	apis, err := h.apis.ListAPIs(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch APIs")
		return
	}
	if apis == nil {
		apis = []domain.API{}
	}
	shared.RespondWithData(w, r, http.StatusOK, apis)
}

// buildDrafts normalizes the request's header and parameter inputs.
func buildDrafts(ctx context.Context, req *AddAPIRequest) (domain.APIDraft, []domain.EndpointDraft) {
	api := domain.APIDraft{
		CompanyName: req.APIData.CompanyName,
		BaseURL:     req.APIData.BaseURL,
		Purpose:     req.APIData.Purpose,
		APIKey:      req.APIData.APIKey,
		Headers:     normalize.Headers(ctx, "apiData.headers", req.APIData.Headers),
		AuthType:    req.APIData.AuthType,
	}

	endpoints := make([]domain.EndpointDraft, 0, len(req.Endpoints))
	for _, e := range req.Endpoints {
		params := e.Params
		if params.IsZero() {
			params = e.Parameters
		}
		endpoints = append(endpoints, domain.EndpointDraft{
			Path:    e.Path,
			Method:  e.Method,
			Purpose: e.Purpose,
			Params:  normalize.Params(ctx, "endpoints.params", params),
			Headers: normalize.Headers(ctx, "endpoints.headers", e.Headers),
		})
	}
	return api, endpoints
}
