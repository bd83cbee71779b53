// Package normalize converts the header and parameter shapes clients submit
// into the canonical mappings stored with each API and endpoint.
//
// Clients send headers and parameters in one of three forms: an array of
// {key, value} (or {name, type, requirement}) pairs, a JSON-encoded string,
// or an object that is already keyed by name. Input captures which form was
// received and Headers/Params fold every form into domain.Headers and
// domain.Params. Normalization never fails: unusable entries are skipped and
// an unparseable encoded string becomes an empty mapping.
package normalize
