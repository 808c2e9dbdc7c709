package gatehouse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gatehouselabs/gatehouse"
	"github.com/gatehouselabs/gatehouse/repository/memory"
	"github.com/gatehouselabs/gatehouse/session"
)

func newTestEngine(t *testing.T) (*gatehouse.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	cfg := gatehouse.DefaultConfig()
	cfg.JWT.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.JWT.AccessTTL = time.Minute

	engine, err := gatehouse.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserRepository(memory.NewRepository()).
		Build()
	if err != nil {
		t.Fatalf("engine build: %v", err)
	}

	return engine, mr
}

func TestSignUpThenSignIn(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if token == "" {
		t.Fatal("sign in must return a non-empty token")
	}
}

func TestSignUpDoesNotSignIn(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if got := mr.Keys(); len(got) != 0 {
		t.Fatalf("sign up must not create a session, found keys %v", got)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("first sign up: %v", err)
	}

	err := engine.SignUp(ctx, "a@x.com", "Other#456")
	if !errors.Is(err, gatehouse.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists regardless of password, got %v", err)
	}
}

func TestSignInCollapsesFailureCauses(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	_, unknownEmail := engine.SignIn(ctx, "nobody@x.com", "Pass#123")
	_, wrongPassword := engine.SignIn(ctx, "a@x.com", "Wrong#123")

	if !errors.Is(unknownEmail, gatehouse.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if !errors.Is(wrongPassword, gatehouse.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownEmail.Error() != wrongPassword.Error() {
		t.Fatal("the two failure messages must be indistinguishable")
	}
}

func TestFreshTokenValidatesImmediately(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	identity, err := engine.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if identity.Email != "a@x.com" {
		t.Fatalf("identity email = %q, want a@x.com", identity.Email)
	}
	if identity.UserID == "" || identity.SessionID == "" {
		t.Fatalf("identity must carry user and session ids: %+v", identity)
	}
}

func TestSecondSignInInvalidatesFirstToken(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	first, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("first sign in: %v", err)
	}
	second, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("second sign in: %v", err)
	}

	// The first token has not expired, but its session slot was overwritten.
	if _, err := engine.Validate(ctx, first); !errors.Is(err, gatehouse.ErrSessionInvalidated) {
		t.Fatalf("first token: expected ErrSessionInvalidated, got %v", err)
	}
	if _, err := engine.Validate(ctx, second); err != nil {
		t.Fatalf("second token must stay valid: %v", err)
	}
}

func TestSignOutInvalidatesAndIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	identity, err := engine.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := engine.SignOut(ctx, identity.UserID); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := engine.Validate(ctx, token); !errors.Is(err, gatehouse.ErrSessionInvalidated) {
		t.Fatalf("expected ErrSessionInvalidated after sign out, got %v", err)
	}

	if err := engine.SignOut(ctx, identity.UserID); err != nil {
		t.Fatalf("repeated sign out must not error: %v", err)
	}
	if err := engine.SignOut(ctx, "user-without-session"); err != nil {
		t.Fatalf("sign out without a session must not error: %v", err)
	}
}

func TestValidateRejectsMissingAndGarbageTokens(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Validate(ctx, ""); !errors.Is(err, gatehouse.ErrAuthenticationRequired) {
		t.Fatalf("empty token: expected ErrAuthenticationRequired, got %v", err)
	}
	if _, err := engine.Validate(ctx, "not.a.jwt"); !errors.Is(err, gatehouse.ErrTokenInvalid) {
		t.Fatalf("garbage token: expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateRejectsTamperedTokenRegardlessOfStore(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := engine.Validate(ctx, tampered); !errors.Is(err, gatehouse.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateFailsClosedWhenStoreUnreachable(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	mr.Close()

	_, err = engine.Validate(ctx, token)
	if !errors.Is(err, session.ErrUnavailable) {
		t.Fatalf("expected session.ErrUnavailable (fail closed), got %v", err)
	}
	if errors.Is(err, gatehouse.ErrSessionInvalidated) {
		t.Fatal("a store outage must not be reported as an invalid session")
	}
}

func TestSessionKeyLayout(t *testing.T) {
	engine, mr := newTestEngine(t)
	ctx := context.Background()

	if err := engine.SignUp(ctx, "a@x.com", "Pass#123"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, err := engine.SignIn(ctx, "a@x.com", "Pass#123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	identity, err := engine.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	// The on-store contract for external inspectors.
	stored, err := mr.Get("session:" + identity.UserID)
	if err != nil {
		t.Fatalf("raw session key lookup: %v", err)
	}
	if stored != identity.SessionID {
		t.Fatalf("stored session id %q does not match token's %q", stored, identity.SessionID)
	}
}
