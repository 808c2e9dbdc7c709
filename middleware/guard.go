package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gatehouselabs/gatehouse"
	"github.com/gatehouselabs/gatehouse/session"
)

type identityContextKey struct{}

// IdentityFromContext returns the verified identity attached by [Guard], if any.
func IdentityFromContext(ctx context.Context) (*gatehouse.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(*gatehouse.Identity)
	return identity, ok
}

// Guard returns middleware enforcing a valid, currently-active bearer token on every
// wrapped route.
func Guard(engine *gatehouse.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, _ := bearerToken(r.Header.Get("Authorization"))

			identity, err := engine.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrUnavailable) {
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
