// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/cliparse"
	"github.com/danielhkuo/querydesk/handlers"
	"github.com/danielhkuo/querydesk/middleware"
	"github.com/danielhkuo/querydesk/models"
	"github.com/danielhkuo/querydesk/services"
	"github.com/danielhkuo/querydesk/store"
)

// NewRouter wires store, services and handlers onto a chi router. Every
// error a handler returns is written by errHandler.
func NewRouter(db *sql.DB, cfg cliparse.Config, logger logrus.FieldLogger, errHandler apierr.ErrorHandler) *chi.Mux {
	r := chi.NewRouter()

	// Initialize handlers
	st := store.New(db)
	formDataHandler := handlers.NewFormDataHandler(
		services.NewFormDataService(st, logger),
		middleware.NewReplyShaper(cfg.RedactFields),
	)
	queryHandler := handlers.NewQueryHandler(services.NewQueryService(st, logger))
	validator := middleware.NewValidator()

	wrap := func(fn handlers.HandlerFunc) http.HandlerFunc {
		return handlers.Wrap(errHandler, fn)
	}

	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(logger),
		middleware.Recoverer(errHandler, logger),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{cfg.CORSOrigin},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}),
	)

	r.NotFound(wrap(routeNotFound))
	r.MethodNotAllowed(wrap(routeNotFound))

	// Health check
	r.Get("/health", handlers.Health)

	r.Get("/form-data", wrap(formDataHandler.List))

	r.Route("/queries", func(r chi.Router) {
		r.With(middleware.ValidateBody[models.CreateQueryRequest](validator)).
			Post("/", wrap(queryHandler.Create))
		r.Patch("/{id}", wrap(queryHandler.Resolve))
		r.With(middleware.ValidateBody[models.UpdateQueryRequest](validator)).
			Put("/{id}", wrap(queryHandler.UpdateDescription))
		r.Delete("/{id}", wrap(queryHandler.Delete))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("querydesk API v1"))
	})

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) error {
	return apierr.New(fmt.Sprintf("Route %s:%s not found", r.Method, r.URL.Path), apierr.NotFound)
}
