package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/authz"
	hubmiddleware "github.com/jagan25-mj/startup-connect-hub/internal/middleware"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
	"github.com/jagan25-mj/startup-connect-hub/internal/telemetry"
)

// RouterOptions controls the construction of the API router.
// Issuer, Verifier, Mediator and the repositories are required; everything
// else falls back to a sensible default when not set.
type RouterOptions struct {
	Issuer      *auth.Issuer
	Verifier    *auth.Verifier
	Mediator    *authz.Mediator
	Users       repository.UserRepository
	Startups    repository.StartupRepository
	Interests   repository.InterestRepository
	CORSOptions *cors.Options
	Metrics     *telemetry.ServerMetrics
	Middleware  []func(http.Handler) http.Handler
	Health      http.HandlerFunc
	ExtraRoutes func(chi.Router)
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Startup Connect Hub API is running",
		"version": "1.0.0",
	})
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy, and
// the platform handlers mounted. Registration, login and token refresh are
// the only unauthenticated API endpoints; every resource route sits behind
// the bearer-token middleware.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	if opts.Metrics != nil {
		r.Use(hubmiddleware.RequestMetrics(opts.Metrics))
	}

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	healthHandler := opts.Health
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/api/health", healthHandler)

	startups := NewStartupHandlers(opts.Mediator, opts.Startups)
	interests := NewInterestHandlers(opts.Mediator, opts.Interests)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", HandleRegister(opts.Users, opts.Issuer))
		r.Post("/login", HandleLogin(opts.Users, opts.Issuer))
		r.Post("/token/refresh", HandleRefresh(opts.Verifier, opts.Issuer))

		r.Group(func(r chi.Router) {
			r.Use(hubmiddleware.RequireAuth(opts.Verifier))

			me := HandleMe(opts.Users)
			r.Get("/me", me)
			r.Put("/me", me)
			r.Patch("/me", me)

			r.Get("/users", HandleUserList(opts.Mediator, opts.Users))
			r.Get("/users/{id}", HandleUserDetail(opts.Mediator, opts.Users))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(hubmiddleware.RequireAuth(opts.Verifier))

		r.Route("/api/startups", func(r chi.Router) {
			r.Get("/", startups.List)
			r.Post("/", startups.Create)
			r.Get("/my", startups.ListMine)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", startups.Detail)
				r.Put("/", startups.Update)
				r.Patch("/", startups.Update)
				r.Delete("/", startups.Delete)

				r.Post("/interest", interests.Create)
				r.Delete("/interest", interests.Delete)
				r.Get("/interests", interests.ListByStartup)
			})
		})

		r.Get("/api/my/interests", interests.ListMine)
	})

	if opts.ExtraRoutes != nil {
		opts.ExtraRoutes(r)
	}

	return r
}
