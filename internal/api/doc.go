// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the user and API registration
// services.
package api
