// Package session implements the Redis-backed single-session-per-user store.
//
// Each user owns exactly one slot, keyed by a configurable prefix plus the user id,
// holding the opaque session id of the currently valid sign-in. Put overwrites the slot
// unconditionally (last write wins), Delete is idempotent, and Matches is a single read
// so it can never observe a torn value under concurrent writes. Slots carry no TTL: the
// store, not token expiry, is the source of truth for "is this user signed in".
//
// # Architecture boundaries
//
// This package owns the key layout and Redis I/O only. It knows nothing about tokens,
// passwords, or users beyond their ids.
//
// # What this package must NOT do
//
//   - Interpret session id values (they are opaque strings).
//   - Swallow connectivity failures — every operation wraps them in [ErrUnavailable]
//     so callers can fail closed.
package session
