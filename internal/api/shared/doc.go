// Package shared holds the response envelope, request decoding and
// request-context helpers used by the api package and its middleware.
package shared
