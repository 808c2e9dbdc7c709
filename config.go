package gatehouse

import (
	"errors"
	"time"
)

// Config defines the deployment-fixed settings for an [Engine].
//
// Config instances are intended to be configured during initialization and then treated
// as immutable.
type Config struct {
	JWT     JWTConfig
	Session SessionConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig controls access-token signing. The secret and TTL are fixed per deployment,
// not per call.
type JWTConfig struct {
	Secret    []byte
	AccessTTL time.Duration
	Issuer    string
	Leeway    time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the session store key layout.
//
// KeyPrefix is the only on-store contract that must be preserved for anything
// inspecting Redis directly: the slot for a user lives at KeyPrefix + userID.
type SessionConfig struct {
	KeyPrefix string
}

// DefaultConfig returns a Config with production-safe defaults. The JWT secret has no
// default and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL: 15 * time.Minute,
			Issuer:    "gatehouse",
		},
		Session: SessionConfig{
			KeyPrefix: "session:",
		},
	}
}

func validateConfig(cfg Config) error {
	if len(cfg.JWT.Secret) < 32 {
		return errors.New("jwt secret must be at least 32 bytes")
	}
	if cfg.JWT.AccessTTL <= 0 {
		return errors.New("jwt access ttl must be positive")
	}
	if cfg.JWT.Leeway < 0 || cfg.JWT.Leeway > 2*time.Minute {
		return errors.New("jwt leeway out of range")
	}
	if cfg.Session.KeyPrefix == "" {
		return errors.New("session key prefix must not be empty")
	}
	return nil
}
