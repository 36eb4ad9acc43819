package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/server/internal/auth"
)

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, "campushub")
	identity := auth.Identity{
		ID:       "64f1b2c3d4e5f60718293a4b",
		Username: "jdoe",
		Email:    "jdoe@univ.edu",
		Role:     "student",
	}
	token, _, err := issuer.Issue(identity)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var got auth.Identity
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, _ = IdentityFrom(r)
	})
	handler := Authenticate(issuer, "test")(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler not reached")
	}
	if got != identity {
		t.Errorf("identity = %+v, want %+v", got, identity)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, "campushub")
	handler := Authenticate(issuer, "test")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, "campushub")
	other := auth.NewTokenIssuer("other-secret", time.Hour, "campushub")
	token, _, err := other.Issue(auth.Identity{ID: auth.EnvAdminID, Role: "admin"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := Authenticate(issuer, "test")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
