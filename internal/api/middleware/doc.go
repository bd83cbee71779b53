// Package middleware provides HTTP middleware for authentication, request
// tracing, panic recovery and rate limiting.
package middleware
