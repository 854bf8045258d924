// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/projects. Reads are
// open to any signed-in user; creation and roster mutations are
// admin-only.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireSignedIn)

	r.With(tokens.RequireRole("admin")).Post("/", h.HandleCreateProject)
	r.Get("/", h.HandleListProjects)
	r.Get("/{projectId}", h.HandleProjectDetail)

	r.Get("/{projectId}/team", h.HandleGetTeam)
	r.With(tokens.RequireRole("admin")).Post("/{projectId}/team", h.HandleAddTeamMember)
	r.With(tokens.RequireRole("admin")).Put("/{projectId}/team/{userId}", h.HandleUpdateTeamMemberRole)
	r.With(tokens.RequireRole("admin")).Delete("/{projectId}/team/{userId}", h.HandleRemoveTeamMember)

	return r
}
