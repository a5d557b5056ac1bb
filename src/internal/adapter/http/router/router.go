package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Auth guards every ledger route. Swagger and health stay public.
	Auth        func(http.Handler) http.Handler
	Session     func(http.Handler) http.Handler
	Idempotency func(http.Handler) http.Handler
}

func New(opts Options, registrars ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.OperatorHeader, middleware.SessionHeader, middleware.IdempotencyHeader},
		ExposedHeaders:   []string{middleware.ReplayedHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("healthy"))
	})
	registerSwaggerRoutes(r)

	r.Group(func(r chi.Router) {
		for _, mw := range []func(http.Handler) http.Handler{opts.Auth, middleware.RequestContext, opts.Session, opts.Idempotency} {
			if mw != nil {
				r.Use(mw)
			}
		}

		for _, registrar := range registrars {
			if registrar != nil {
				registrar.RegisterRoutes(r)
			}
		}
	})

	return r
}
