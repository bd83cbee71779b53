package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// MaxPasswordLength is the longest password, in bytes, that bcrypt can hash.
const MaxPasswordLength = 72

// User is a registered account that may manage API registrations.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only present during signup
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser builds a User from signup input and validates it. The ID and
// creation time are assigned by the store on insert.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the signup invariants: username, email and password are
// present, the email parses, and the password length lies between
// MinPasswordLength characters and MaxPasswordLength bytes.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if u.Email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return NewValidationError("email", "has invalid format", nil)
	}

	if u.Password == "" {
		if u.HashedPassword == "" {
			return NewValidationError("password", "is required", nil)
		}
		return nil
	}
	if len(u.Password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 6 characters long", nil)
	}
	if len(u.Password) > MaxPasswordLength {
		return NewValidationError("password", "must be at most 72 characters long", nil)
	}
	return nil
}

// Public strips credentials, leaving the fields that may be echoed to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
