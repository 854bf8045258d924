// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/users. Everything is
// admin-only except creation, which stays reachable without a token so
// an empty install can seed its first admin; the handler enforces the
// admin rule once an admin exists.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreateUser)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireSignedIn)
		pr.Use(tokens.RequireRole("admin"))

		pr.Get("/", h.HandleListUsers)
		pr.Put("/role", h.HandleUpdateRole)
		pr.Put("/deactivate", h.HandleDeactivate)
		pr.Put("/{id}/password", h.HandleSetPassword)
		pr.Delete("/{id}", h.HandleDeleteUser)
	})

	return r
}
