package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length limits. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var validate = validator.New()

// User represents a registered account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only held between registration and hashing
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given name, email and plaintext
// password. The caller must hash the password and clear Password before the
// user is stored.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyName)
	}

	if u.Email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}

	if err := validate.Var(u.Email, "email"); err != nil {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}

	// A plaintext password is only present during registration; stored users
	// carry the hash instead.
	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyPassword)
	}

	return nil
}

// ValidatePassword checks the password length bounds.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return NewValidationError("password", "is required", ErrEmptyPassword)
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "must be at least 8 characters", ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "must be at most 72 characters", ErrPasswordTooLong)
	}
	return nil
}
