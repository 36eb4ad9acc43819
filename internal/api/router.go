package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/campushub/server/internal/api/handlers"
	"github.com/campushub/server/internal/api/middleware"
	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/config"
	"github.com/campushub/server/internal/domain/events"
	"github.com/campushub/server/internal/domain/registrations"
	"github.com/campushub/server/internal/metrics"
	"github.com/campushub/server/internal/storage"
	"github.com/rs/zerolog"
)

// NewRouter wires services, handlers, and the middleware chain. The caller
// owns the repository's lifecycle.
func NewRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository) http.Handler {
	verifier := auth.NewVerifier(repo.Users(), auth.AdminOverride{
		Email:     cfg.AdminOverride.Email,
		Password:  cfg.AdminOverride.Password,
		Username:  cfg.AdminOverride.Username,
		FirstName: cfg.AdminOverride.FirstName,
		LastName:  cfg.AdminOverride.LastName,
	})
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	eventsService := events.NewService(repo.Events(), repo.Venues())
	registrationsService := registrations.NewService(repo.Events(), repo.Registrations())

	authHandler := handlers.NewAuthHandler(verifier, issuer, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	registrationsHandler := handlers.NewRegistrationsHandler(registrationsService, cfg.Environment)

	authenticated := middleware.Authenticate(issuer, cfg.Environment)
	rateLimit := middleware.RateLimit(cfg.RateLimit)
	// The login tier must be in context before the limiter runs.
	loginLimited := func(h http.Handler) http.Handler {
		return middleware.WithRateLimitTier(middleware.TierLogin)(rateLimit(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(repo))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimited(http.HandlerFunc(authHandler.Login)),
	}))
	mux.Handle("/api/v1/auth/me", methodMux(map[string]http.Handler{
		http.MethodGet: rateLimit(authenticated(http.HandlerFunc(authHandler.Me))),
	}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  rateLimit(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: rateLimit(authenticated(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    rateLimit(http.HandlerFunc(eventsHandler.Get)),
		http.MethodPut:    rateLimit(authenticated(http.HandlerFunc(eventsHandler.Update))),
		http.MethodDelete: rateLimit(authenticated(http.HandlerFunc(eventsHandler.Delete))),
	}))
	mux.Handle("/api/v1/events/{id}/register", methodMux(map[string]http.Handler{
		http.MethodPost: rateLimit(authenticated(http.HandlerFunc(registrationsHandler.Register))),
	}))
	mux.Handle("/api/v1/registrations/mine", methodMux(map[string]http.Handler{
		http.MethodGet: rateLimit(authenticated(http.HandlerFunc(registrationsHandler.ListMine))),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
