// Package mocks provides hand-written test doubles for the store, auth and
// service interfaces.
//
// Every mock exposes function fields (CreateFn, ValidateTokenFn, ...) that a
// test can set to script behavior. When a field is nil the mock falls back to
// a simple in-memory or fixed-value default, so most tests only override the
// one call they care about:
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
package mocks
