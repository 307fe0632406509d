package taskboard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "snapboard-backend/pkg/errors"
)

// User is a local identity created lazily on first authenticated request
type User struct {
	id        string
	email     string
	createdAt time.Time
}

// NewUser creates a user for a newly seen principal email
func NewUser(email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	return &User{
		id:        uuid.New().String(),
		email:     email,
		createdAt: time.Now(),
	}, nil
}

// ReconstructUser restores a user from repository data
func ReconstructUser(id, email string, createdAt time.Time) *User {
	return &User{id: id, email: email, createdAt: createdAt}
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
