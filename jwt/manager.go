package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by [Manager.ParseAccess] for any token that fails
// verification: bad signature, malformed encoding, or past expiry.
var ErrInvalidToken = errors.New("invalid access token")

// Config defines signing settings for a [Manager].
//
// Config instances are intended to be configured during initialization and then treated
// as immutable.
type Config struct {
	Secret    []byte
	AccessTTL time.Duration
	Issuer    string
	Leeway    time.Duration
}

// Manager issues and verifies signed access tokens.
//
// Manager instances are immutable after construction and safe for concurrent use.
type Manager struct {
	config Config
}

// AccessClaims is the claim set carried by an access token: the user id, the email, and
// the session id the token was bound to at issuance.
type AccessClaims struct {
	UID   string `json:"id"`
	Email string `json:"email"`
	SID   string `json:"sid"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires a signing secret")
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Manager{config: cfg}, nil
}

// CreateAccess signs a token binding uid and email to the given session id, expiring
// after the configured TTL.
func (m *Manager) CreateAccess(uid, email, sid string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UID:   uid,
		Email: email,
		SID:   sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTTL)),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// ParseAccess verifies tokenStr and returns its claims. Any verification failure,
// whatever the cause, is reported as [ErrInvalidToken].
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UID == "" || claims.SID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
