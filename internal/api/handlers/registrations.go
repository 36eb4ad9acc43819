package handlers

import (
	"errors"
	"net/http"

	"github.com/campushub/server/internal/api/middleware"
	"github.com/campushub/server/internal/api/problem"
	"github.com/campushub/server/internal/domain/registrations"
)

type RegistrationsHandler struct {
	Service *registrations.Service
	Env     string
}

func NewRegistrationsHandler(service *registrations.Service, env string) *RegistrationsHandler {
	return &RegistrationsHandler{Service: service, Env: env}
}

// Register handles POST /api/v1/events/{id}/register.
func (h *RegistrationsHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	reg, err := h.Service.Register(r.Context(), pathParam(r, "id"), identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// ListMine handles GET /api/v1/registrations/mine.
func (h *RegistrationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	items, err := h.Service.ListMine(r.Context(), identity)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RegistrationsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registrations.ErrEventNotFound):
		problem.Write(w, r, http.StatusNotFound, "https://campushub.dev/problems/not-found", "Event not found", err, h.Env)
	case errors.Is(err, registrations.ErrAlreadyRegistered):
		problem.Write(w, r, http.StatusConflict, "https://campushub.dev/problems/conflict", "Already registered", err, h.Env)
	case errors.Is(err, registrations.ErrDeadlinePassed),
		errors.Is(err, registrations.ErrEventFull),
		errors.Is(err, registrations.ErrNotRegistrableUser):
		problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Registration rejected", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
	}
}
