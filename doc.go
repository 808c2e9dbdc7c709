// Package gatehouse provides a small authentication/session backend core with JWT access
// tokens, Argon2id password hashing, and a Redis-backed single-session-per-user store.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build]. The Engine itself
// holds no mutable cross-request state; everything lives in the user repository and the
// session store.
//
// # Architecture boundaries
//
// gatehouse is the public surface. It exposes [Engine], [Builder], [Config], the
// [UserRepository] integration interface, and value types ([User], [Identity]). Leaf
// components live in sub-packages: password hashing under password/, token issuance and
// verification under jwt/, the session store under session/, and the HTTP access guard
// under middleware/.
//
// # Session protocol
//
// Each user owns exactly one session slot in Redis, keyed by a configurable prefix plus
// the user id. Sign-in writes a fresh random session id into that slot before the access
// token embedding it is returned; validation re-derives token validity from signature,
// expiry, and agreement with the slot's current value. Overwriting the slot (a later
// sign-in) or deleting it (sign-out) therefore invalidates every previously issued token
// for that user immediately, without a token blacklist.
//
// # What this package must NOT do
//
//   - Expose Redis clients, SQL handles, or token encoding details in its public API.
//   - Retry infrastructure failures — store and repository errors propagate to the
//     caller, which owns retry policy.
//   - Grant access when the session store cannot be reached (fail closed).
package gatehouse
