// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes Fn fields that override a single method; without an
// override the store mocks behave like small in-memory stores that follow the
// same contracts as the PostgreSQL implementations (sentinel errors, joint
// id/owner matching for tasks). They are safe for concurrent use, so they can
// back an httptest.Server.
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
