package mocks

import (
	"errors"

	"github.com/tenantbot/api-registry/internal/service/auth"
)

// ErrMockPasswordMismatch is returned by MockPassword when ShouldSucceed is false.
var ErrMockPasswordMismatch = errors.New("mock password mismatch")

// MockPassword implements auth.PasswordHasher and auth.PasswordVerifier.
// Its default hash is the plaintext prefixed with "hashed:".
type MockPassword struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed makes the default Compare accept any password.
	ShouldSucceed bool

	CompareCallCount int
}

var (
	_ auth.PasswordHasher   = (*MockPassword)(nil)
	_ auth.PasswordVerifier = (*MockPassword)(nil)
)

// Hash implements auth.PasswordHasher
func (m *MockPassword) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (m *MockPassword) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed || hashedPassword == "hashed:"+password {
		return nil
	}
	return ErrMockPasswordMismatch
}
