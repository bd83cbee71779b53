package api

import (
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/normalize"
)

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// SigninRequest defines the payload for the signin endpoint.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Success bool              `json:"success"`
	User    domain.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

// TokenStatus is the data of a verify-token response.
type TokenStatus struct {
	Valid bool               `json:"valid"`
	User  *domain.PublicUser `json:"user,omitempty"`
}

// AddAPIRequest defines the payload for registering an API with its
// endpoints. Headers and parameters accept any form normalize.Input decodes.
type AddAPIRequest struct {
	APIData   APIData        `json:"apiData"`
	Endpoints []EndpointData `json:"endpoints"`
}

// APIData is the API half of an AddAPIRequest.
type APIData struct {
	CompanyName string          `json:"companyName"`
	BaseURL     string          `json:"baseUrl"`
	Purpose     string          `json:"purpose"`
	APIKey      string          `json:"apiKey"`
	Headers     normalize.Input `json:"headers"`
	AuthType    string          `json:"authType"`
}

// EndpointData is one endpoint of an AddAPIRequest. Clients send the
// parameter mapping as either "params" or "parameters".
type EndpointData struct {
	Path       string          `json:"path"`
	Method     string          `json:"method"`
	Purpose    string          `json:"purpose"`
	Params     normalize.Input `json:"params"`
	Parameters normalize.Input `json:"parameters"`
	Headers    normalize.Input `json:"headers"`
}

// AddAPIResponse is returned after a successful registration.
type AddAPIResponse struct {
	Success bool   `json:"success"`
	APIID   string `json:"apiId"`
}
