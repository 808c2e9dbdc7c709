// Package jwt manages access-token issuance and verification with HMAC-SHA256 signing
// and strict validation semantics.
//
// Verification deliberately collapses bad-signature, malformed, and expired tokens into
// the single [ErrInvalidToken] so callers cannot distinguish why a token was rejected.
package jwt
