// Package httpapi exposes the authentication engine over HTTP.
//
// # Routes
//
//	POST /auth/sign-up   public    201 on success, 409 duplicate email, 400 invalid input
//	POST /auth/sign-in   public    200 {accessToken}, 400 bad credentials
//	POST /auth/sign-out  guarded   200 empty body
//	GET  /users/me       guarded   200 profile
//	GET  /healthz        public    200 liveness probe
//
// Request validation (shape, email syntax, password policy, confirmation match) happens
// here, before the engine: the core only ever sees well-formed input. Domain errors map
// 1:1 to 4xx responses; infrastructure errors map to a generic 500 (503 from the guard
// when the session store cannot confirm a session) and are logged with the structured
// logger, never echoed to the client.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls and owns the DTO shapes.
// It makes no authentication decisions itself.
package httpapi
