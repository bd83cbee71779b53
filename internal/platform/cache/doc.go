// Package cache stores the API listing in Redis so repeated GET /api/all
// calls skip the aggregate query. The database stays authoritative: callers
// treat every cache error as a miss.
package cache
