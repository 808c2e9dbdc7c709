// Package password implements one-way password hashing and verification with Argon2id.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Hashing embeds a fresh random salt on every call, so the same plaintext never yields
// the same encoded hash twice. Verification recomputes the digest with the parameters
// and salt carried inside the encoded hash and compares in constant time.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length, character
// classes) is enforced at the HTTP boundary before plaintext ever reaches a Hasher.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other gatehouse package.
//   - Expose cost parameters: they are fixed at safe defaults.
package password
