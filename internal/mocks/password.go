package mocks

import (
	"errors"
	"strings"
	"sync"
)

// ErrPasswordMismatch is returned by the mock verifiers on a failed comparison.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments of the last Compare call
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}

// PlainHasherPrefix marks hashes produced by PlainHasher.
const PlainHasherPrefix = "plain:"

// PlainHasher is a fast, reversible stand-in for bcrypt. It implements both
// auth.PasswordHasher and auth.PasswordVerifier so tests that exercise the
// whole register/login flow avoid bcrypt's cost.
type PlainHasher struct {
	mu        sync.Mutex
	HashErr   error
	HashCalls int
}

// Hash implements auth.PasswordHasher
func (h *PlainHasher) Hash(password string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.HashCalls++
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return PlainHasherPrefix + password, nil
}

// Compare implements auth.PasswordVerifier
func (h *PlainHasher) Compare(hashedPassword, password string) error {
	if !strings.HasPrefix(hashedPassword, PlainHasherPrefix) ||
		strings.TrimPrefix(hashedPassword, PlainHasherPrefix) != password {
		return ErrPasswordMismatch
	}
	return nil
}
