// Package middleware exposes the HTTP access guard built on Engine.Validate.
//
// # Guard
//
// [Guard] reads the Authorization bearer header, validates the token against both its
// signature/expiry and the session store, and injects the verified [gatehouse.Identity]
// into the request context for downstream handlers. Public routes are simply composed
// without the guard — the router decides per route, there is no ambient metadata.
//
// All rejection causes (missing token, invalid token, invalidated session) surface as
// one uniform 401 so a caller cannot probe which check failed. A session-store outage
// is the one exception: it surfaces as 503 because the server, not the credential, is
// at fault — access is still denied (fail closed).
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine.Validate).
//   - Access Redis (the Engine owns I/O).
//   - Make authorization decisions beyond pass/reject from Engine.Validate.
package middleware
