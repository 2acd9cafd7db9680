package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires the API routes.
//
// "/login" stays outside the auth group. "/logout" also does: logging
// out with an expired or garbage token must still succeed, so the
// handler resolves the caller's identity best-effort instead of
// rejecting upfront. Everything else requires a verified token, and the
// user-management routes additionally require the "admin" scope.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)
		r.Post("/logout", h.logout)
	})

	// authorized routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.requireScope("admin")).Get("/users", h.listUsers)
		r.With(h.requireScope("admin")).Put("/users/{user}", h.putUser)
		r.With(h.requireScope("admin")).Delete("/users/{user}", h.deleteUser)

		r.Post("/password", h.changePassword)
	})

	return router
}
