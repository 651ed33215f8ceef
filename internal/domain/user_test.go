package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Ann ", " Ann@X.com ", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@x.com", user.Email, "email should be trimmed and lower-cased")
	assert.Equal(t, "secret123", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNewUser_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "ann@x.com", "secret123", ErrEmptyName},
		{"blank name", "   ", "ann@x.com", "secret123", ErrEmptyName},
		{"missing email", "Ann", "", "secret123", ErrEmptyEmail},
		{"malformed email", "Ann", "not-an-email", "secret123", ErrInvalidEmail},
		{"missing password", "Ann", "ann@x.com", "", ErrEmptyPassword},
		{"short password", "Ann", "ann@x.com", "secret1", ErrPasswordTooShort},
		{"long password", "Ann", "ann@x.com", strings.Repeat("a", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.password)
			assert.Nil(t, user)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			assert.True(t, errors.Is(err, ErrValidation), "field errors should wrap ErrValidation")
		})
	}
}

func TestUserValidate_StoredUser(t *testing.T) {
	stored := User{
		ID:             uuid.New(),
		Name:           "Ann",
		Email:          "ann@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, stored.Validate())

	stored.HashedPassword = ""
	assert.ErrorIs(t, stored.Validate(), ErrEmptyPassword)

	stored.ID = uuid.Nil
	assert.ErrorIs(t, stored.Validate(), ErrEmptyUserID)
}

func TestValidatePassword_Boundaries(t *testing.T) {
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MinPasswordLength)))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength)))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MinPasswordLength-1)), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength+1)), ErrPasswordTooLong)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ann@x.com", NormalizeEmail("  ANN@x.COM\t"))
}
