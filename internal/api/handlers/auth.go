package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/campushub/server/internal/api/middleware"
	"github.com/campushub/server/internal/api/problem"
	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/metrics"
)

type AuthHandler struct {
	Verifier *auth.Verifier
	Issuer   *auth.TokenIssuer
	Env      string
}

func NewAuthHandler(verifier *auth.Verifier, issuer *auth.TokenIssuer, env string) *AuthHandler {
	return &AuthHandler{Verifier: verifier, Issuer: issuer, Env: env}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expires_at"`
	User      auth.Identity `json:"user"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Verifier == nil || h.Issuer == nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", nil, h.Env)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	identity, err := h.Verifier.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Email and password are required", err, h.Env)
		case errors.Is(err, auth.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Invalid credentials", nil, h.Env)
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
		}
		return
	}

	token, expiresAt, err := h.Issuer.Issue(identity)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      identity,
	})
}

// Me handles GET /api/v1/auth/me. The response is the identity projection
// embedded in the token, not a fresh read from storage.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, map[string]auth.Identity{"user": identity})
}
