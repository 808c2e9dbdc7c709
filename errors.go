package gatehouse

import "errors"

var (
	// ErrInvalidCredentials is returned by sign-in for an unknown email or a wrong
	// password. The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned by sign-up when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned by repository lookups for an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is reported by [UserRepository.Save] on an email uniqueness
	// conflict. The Engine translates it to [ErrUserAlreadyExists].
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrAuthenticationRequired is returned when a request carries no bearer token.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrTokenInvalid is returned for a malformed, tampered, or expired access token.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrSessionInvalidated is returned when a well-formed token's session id no longer
	// matches the store's current value for its user.
	ErrSessionInvalidated = errors.New("session invalidated")
)
