package gatehouse

import (
	"context"
	"time"
)

// User is the identity record held by the persistence collaborator. The Engine only
// holds it transiently during a request.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the verified claim set attached to a request after the access guard
// admits it.
//
// Identity instances are read-only snapshots; mutating one has no effect on the token
// or the session store.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
}

// UserRepository is the interface callers must implement to integrate gatehouse with
// their user database.
//
// Save must enforce email uniqueness at the storage boundary and report a conflict as
// [ErrDuplicateEmail]. FindByEmail and FindByID report an unknown user as
// [ErrUserNotFound]. Any other error is treated as an infrastructure failure and
// propagated unchanged.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Save(ctx context.Context, user User) (User, error)
}
