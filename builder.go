package gatehouse

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gatehouselabs/gatehouse/jwt"
	"github.com/gatehouselabs/gatehouse/password"
	"github.com/gatehouselabs/gatehouse/session"
)

// Builder assembles an [Engine] from its collaborators. Construction is allocation-only;
// no I/O happens until Engine methods are called.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	users  UserRepository

	built bool
}

// New returns a Builder pre-loaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the Redis client backing the session store.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserRepository sets the user persistence collaborator.
func (b *Builder) WithUserRepository(users UserRepository) *Builder {
	b.users = users
	return b
}

// Build validates the configuration, wires the leaf components, and returns a ready
// Engine. A Builder can be used at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.users == nil {
		return nil, errors.New("user repository is required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret:    b.config.JWT.Secret,
		AccessTTL: b.config.JWT.AccessTTL,
		Issuer:    b.config.JWT.Issuer,
		Leeway:    b.config.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Engine{
		config:     b.config,
		users:      b.users,
		sessions:   session.NewStore(b.redis, b.config.Session.KeyPrefix),
		hasher:     password.NewHasher(),
		jwtManager: jwtManager,
	}, nil
}
