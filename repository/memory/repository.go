// Package memory provides an in-process UserRepository for tests and development mode.
// It enforces the same email-uniqueness contract as the PostgreSQL implementation.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gatehouselabs/gatehouse"
)

// Repository is a mutex-guarded, map-backed user store. Safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]gatehouse.User
	byEmail map[string]string
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]gatehouse.User),
		byEmail: make(map[string]string),
	}
}

// Save stores user, stamping CreatedAt/UpdatedAt. An already-registered email is
// reported as [gatehouse.ErrDuplicateEmail]. Emails are compared case-sensitively,
// exactly as stored.
func (r *Repository) Save(ctx context.Context, user gatehouse.User) (gatehouse.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return gatehouse.User{}, fmt.Errorf("%w: %s", gatehouse.ErrDuplicateEmail, user.Email)
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID

	return user, nil
}

// FindByEmail returns the user registered under email, or [gatehouse.ErrUserNotFound].
func (r *Repository) FindByEmail(ctx context.Context, email string) (gatehouse.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return gatehouse.User{}, gatehouse.ErrUserNotFound
	}
	return r.byID[id], nil
}

// FindByID returns the user with the given id, or [gatehouse.ErrUserNotFound].
func (r *Repository) FindByID(ctx context.Context, id string) (gatehouse.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return gatehouse.User{}, gatehouse.ErrUserNotFound
	}
	return user, nil
}
