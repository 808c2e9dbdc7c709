package gatehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatehouselabs/gatehouse/jwt"
	"github.com/gatehouselabs/gatehouse/password"
	"github.com/gatehouselabs/gatehouse/session"
)

// Engine orchestrates sign-up, sign-in, sign-out, and token validation. It is stateless
// between calls: all cross-request state lives in the user repository and the session
// store. Construct through [Builder.Build]; methods are safe for concurrent use.
type Engine struct {
	config     Config
	users      UserRepository
	sessions   *session.Store
	hasher     *password.Hasher
	jwtManager *jwt.Manager
}

// SignUp hashes the password and persists a new user. A duplicate email reported by the
// repository is translated to [ErrUserAlreadyExists]; every other persistence failure
// propagates unchanged. Sign-up does not sign the user in — no token is issued.
func (e *Engine) SignUp(ctx context.Context, email, plaintext string) error {
	hash, err := e.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = e.users.Save(ctx, User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s", ErrUserAlreadyExists, email)
	}
	return err
}

// SignIn verifies the credentials and issues an access token bound to a fresh session.
// Unknown email and wrong password both return [ErrInvalidCredentials]; the caller
// cannot tell which check failed.
func (e *Engine) SignIn(ctx context.Context, email, plaintext string) (string, error) {
	user, err := e.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	match, err := e.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	return e.GenerateAccessToken(ctx, user)
}

// GenerateAccessToken writes a fresh random session id into the user's session slot and
// returns an access token embedding it. The session write completes before the token is
// signed, so a token is never observable while its session pointer is absent. The write
// overwrites any prior slot value, invalidating every previously issued token for the
// user.
func (e *Engine) GenerateAccessToken(ctx context.Context, user User) (string, error) {
	sessionID := uuid.NewString()

	if err := e.sessions.Put(ctx, user.ID, sessionID); err != nil {
		return "", err
	}

	token, err := e.jwtManager.CreateAccess(user.ID, user.Email, sessionID)
	if err != nil {
		return "", err
	}

	return token, nil
}

// SignOut deletes the user's session slot, invalidating the current token. It is
// idempotent: signing out twice, or with no active session, is not an error.
func (e *Engine) SignOut(ctx context.Context, userID string) error {
	return e.sessions.Delete(ctx, userID)
}

// Validate checks a bearer token end to end: signature and expiry first, then agreement
// between the token's embedded session id and the store's current value for its user.
// An empty token returns [ErrAuthenticationRequired], a failed token check
// [ErrTokenInvalid], a session mismatch [ErrSessionInvalidated]. A store outage
// propagates as [session.ErrUnavailable] — never as a grant.
func (e *Engine) Validate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}

	claims, err := e.jwtManager.ParseAccess(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	match, err := e.sessions.Matches(ctx, claims.UID, claims.SID)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrSessionInvalidated
	}

	return &Identity{
		UserID:    claims.UID,
		Email:     claims.Email,
		SessionID: claims.SID,
	}, nil
}

// UserByID returns the stored user record for id, for profile endpoints running behind
// the access guard.
func (e *Engine) UserByID(ctx context.Context, id string) (User, error) {
	return e.users.FindByID(ctx, id)
}
