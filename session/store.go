package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps any Redis connectivity failure. Callers must treat it as
// "cannot confirm session" and reject privileged operations, never grant.
var ErrUnavailable = errors.New("session store unavailable")

// Store is a Redis-backed session store holding one session id per user.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client. prefix sets the
// key namespace; the slot for a user lives at prefix + userID.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Put unconditionally upserts the session slot for userID, overwriting (and thereby
// invalidating) any previous session id stored there.
func (s *Store) Put(ctx context.Context, userID, sessionID string) error {
	if err := s.redis.Set(ctx, s.key(userID), sessionID, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Get returns the current session id for userID. The second result is false when no
// slot exists.
func (s *Store) Get(ctx context.Context, userID string) (string, bool, error) {
	value, err := s.redis.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, true, nil
}

// Delete removes the session slot for userID. Deleting an absent slot is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Matches reports whether the stored session id for userID equals sessionID. An absent
// slot or a different value both report false. The check is one GET, so a concurrent
// Put or Delete is observed either entirely or not at all.
func (s *Store) Matches(ctx context.Context, userID, sessionID string) (bool, error) {
	stored, ok, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return stored == sessionID, nil
}
