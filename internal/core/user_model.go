package core

import "context"

// Roles are plain strings compared for equality; nothing validates the set
// of values beyond the default.
const DefaultRole = "user"

// User is an authenticated account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

type UserService interface {
	// Create stores a new user. A duplicate username returns ErrConflict.
	// An empty role defaults to "user".
	Create(ctx context.Context, username, passwordHash, role string) (*User, error)

	// GetByUsername returns ErrNotFound for an unknown username. Callers must
	// collapse that with a password mismatch into one generic
	// invalid-credentials failure.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
