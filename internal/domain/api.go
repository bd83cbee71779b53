package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Headers is the canonical header mapping persisted for APIs and endpoints.
type Headers map[string]string

// ParamSpec describes one endpoint parameter.
type ParamSpec struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Params is the canonical parameter mapping, keyed by parameter name.
type Params map[string]ParamSpec

// DefaultParamType is used when a client omits a parameter's type.
const DefaultParamType = "string"

// API is a registered third-party integration together with its endpoints.
type API struct {
	ID          uuid.UUID  `json:"id"`
	CompanyName string     `json:"company_name"`
	BaseURL     string     `json:"base_url"`
	Purpose     string     `json:"purpose"`
	APIKey      string     `json:"api_key"`
	Headers     Headers    `json:"headers"`
	AuthType    string     `json:"auth_type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// Endpoint is one callable route of an API.
type Endpoint struct {
	ID        uuid.UUID `json:"id"`
	APIID     uuid.UUID `json:"api_id"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Purpose   string    `json:"purpose"`
	Params    Params    `json:"params"`
	Headers   Headers   `json:"headers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// APIDraft is a normalized API awaiting insertion.
type APIDraft struct {
	CompanyName string
	BaseURL     string
	Purpose     string
	APIKey      string
	Headers     Headers
	AuthType    string
}

// EndpointDraft is a normalized endpoint awaiting insertion under a new API.
type EndpointDraft struct {
	Path    string
	Method  string
	Purpose string
	Params  Params
	Headers Headers
}

var allowedMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {}, "HEAD": {}, "OPTIONS": {},
}

// Validate checks required fields and fills the empty-string and empty-map
// defaults so nothing nullable reaches the database.
func (d *APIDraft) Validate() error {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.BaseURL = strings.TrimSpace(d.BaseURL)

	if d.CompanyName == "" {
		return NewValidationError("companyName", "is required", nil)
	}
	if d.BaseURL == "" {
		return NewValidationError("baseUrl", "is required", nil)
	}
	u, err := url.Parse(d.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("baseUrl", "must be an absolute http(s) URL", nil)
	}
	if d.APIKey == "" {
		return NewValidationError("apiKey", "is required", nil)
	}
	if d.Headers == nil {
		d.Headers = Headers{}
	}
	return nil
}

// Validate checks required endpoint fields and upper-cases the method.
func (d *EndpointDraft) Validate() error {
	d.Path = strings.TrimSpace(d.Path)
	d.Method = strings.ToUpper(strings.TrimSpace(d.Method))

	if d.Path == "" {
		return NewValidationError("path", "is required", nil)
	}
	if d.Method == "" {
		return NewValidationError("method", "is required", nil)
	}
	if _, ok := allowedMethods[d.Method]; !ok {
		return NewValidationError("method", "is not a supported HTTP method", nil)
	}
	if strings.TrimSpace(d.Purpose) == "" {
		return NewValidationError("purpose", "is required", nil)
	}
	if d.Params == nil {
		d.Params = Params{}
	}
	if d.Headers == nil {
		d.Headers = Headers{}
	}
	return nil
}
