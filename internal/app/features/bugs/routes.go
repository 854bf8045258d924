// internal/app/features/bugs/routes.go
package bugs

import (
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/bugs. Role gating is
// route-level: testers file, admins and viewers browse, developers work
// their queue, admins manage assignment and deletion.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireSignedIn)

	r.With(tokens.RequireRole("tester")).Post("/", h.HandleCreateBug)
	r.With(tokens.RequireRole("admin", "viewer")).Get("/", h.HandleListBugs)
	r.With(tokens.RequireRole("admin")).Post("/assign", h.HandleAssignBug)
	r.With(tokens.RequireRole("admin")).Post("/assign-project", h.HandleAssignProject)
	r.With(tokens.RequireRole("developer")).Get("/assigned", h.HandleAssignedBugs)
	r.With(tokens.RequireRole("developer", "admin")).Put("/status", h.HandleUpdateStatus)
	r.With(tokens.RequireRole("admin")).Delete("/{id}", h.HandleDeleteBug)

	return r
}
