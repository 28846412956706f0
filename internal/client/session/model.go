package session

import (
	"time"

	"github.com/google/uuid"
)

// Credential is one registered identity. Records are never mutated or
// deleted once stored.
type Credential struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
}

// DisplayName returns FullName when set, falling back to Username and then
// Email.
func (c Credential) DisplayName() string {
	switch {
	case c.FullName != "":
		return c.FullName
	case c.Username != "":
		return c.Username
	default:
		return c.Email
	}
}

// State is the single process-wide session. ActiveUser is non-nil iff
// Authorized is true.
type State struct {
	ID         uuid.UUID
	Authorized bool
	ActiveUser *Credential
	Since      time.Time
}
