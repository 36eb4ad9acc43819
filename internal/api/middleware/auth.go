package middleware

import (
	"context"
	"net/http"

	"github.com/campushub/server/internal/api/problem"
	"github.com/campushub/server/internal/auth"
)

type contextKeyAuth string

const identityKey contextKeyAuth = "identity"

// Authenticate validates the bearer token from the Authorization header and
// attaches the embedded Identity to the request context. The identity is the
// projection frozen at token issuance; it is not re-fetched from storage.
func Authenticate(issuer *auth.TokenIssuer, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if issuer == nil {
				problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Missing authorization header", err, env)
				return
			}

			identity, err := issuer.Verify(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Invalid token", err, env)
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the authenticated identity, if any.
func IdentityFrom(r *http.Request) (auth.Identity, bool) {
	if r == nil {
		return auth.Identity{}, false
	}
	identity, ok := r.Context().Value(identityKey).(auth.Identity)
	return identity, ok
}
