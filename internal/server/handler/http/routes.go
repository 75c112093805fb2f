// Package http provides the HTTP handlers and routing for the ContactKeeper
// API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Tags        *TagHandler
	Contacts    *ContactHandler
	Assignments *AssignmentHandler
	Health      *HealthHandler
}

// NewRouter constructs the HTTP handler serving the ContactKeeper API.
//
// Routes:
//
//	POST   /register                        → Auth.Register
//	POST   /login                           → Auth.Login
//	GET    /healthz                         → Health.Check
//	POST   /tags/create/{userID}            → Tags.Create
//	GET    /tags/{userID}                   → Tags.List
//	DELETE /tags/{userID}                   → Tags.Delete
//	POST   /contacts/create/{userID}        → Contacts.Create
//	POST   /contacts/update/{userID}        → Contacts.Update
//	GET    /contacts/{userID}               → Contacts.List
//	DELETE /contacts/{userID}               → Contacts.Delete
//	POST   /contacts/assign_tag/{userID}    → Assignments.Assign
//	POST   /contacts/unassign_tag/{userID}  → Assignments.Unassign
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger)
//  2. Recoverer
//  3. CORS for allowedOrigins
//  4. AllowContentType("application/json") for requests with a body
func NewRouter(h Handlers, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Get("/healthz", h.Health.Check)

	// Every route below is scoped to the {userID} path segment.
	r.Route("/tags", func(r chi.Router) {
		user := r.With(middleware.UserFromPath)
		user.Post("/create/{userID}", h.Tags.Create)
		user.Get("/{userID}", h.Tags.List)
		user.Delete("/{userID}", h.Tags.Delete)
	})

	r.Route("/contacts", func(r chi.Router) {
		user := r.With(middleware.UserFromPath)
		user.Post("/create/{userID}", h.Contacts.Create)
		user.Post("/update/{userID}", h.Contacts.Update)
		user.Get("/{userID}", h.Contacts.List)
		user.Delete("/{userID}", h.Contacts.Delete)
		user.Post("/assign_tag/{userID}", h.Assignments.Assign)
		user.Post("/unassign_tag/{userID}", h.Assignments.Unassign)
	})

	return r
}
