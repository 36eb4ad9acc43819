package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campushub/server/internal/api/middleware"
	"github.com/campushub/server/internal/api/problem"
	"github.com/campushub/server/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// List handles GET /api/v1/events. Every item carries the venue snapshot
// (or null) plus the flat venueId reference; there is no pagination.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	var input events.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	created, err := h.Service.Create(r.Context(), input, identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/v1/events/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, "https://campushub.dev/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	var input events.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	updated, err := h.Service.Update(r.Context(), pathParam(r, "id"), input, identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), pathParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (h *EventsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var forbidden events.ForbiddenError
	var invalid events.ValidationError
	switch {
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, "https://campushub.dev/problems/not-found", "Event not found", err, h.Env)
	case errors.As(err, &forbidden):
		problem.Write(w, r, http.StatusForbidden, "https://campushub.dev/problems/forbidden", "Forbidden", nil, h.Env, problem.WithDetail(forbidden.Message))
	case errors.As(err, &invalid):
		problem.Write(w, r, http.StatusBadRequest, "https://campushub.dev/problems/validation-error", "Invalid request", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, "https://campushub.dev/problems/server-error", "Server error", err, h.Env)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}
