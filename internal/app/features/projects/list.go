// internal/app/features/projects/list.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"

	projectstore "github.com/dalemusser/bughub/internal/app/store/projects"
	"github.com/dalemusser/bughub/internal/app/store/queries/teammembers"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleListProjects handles GET /api/projects (any signed-in user).
func (h *Handler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := projectstore.New(h.DB).List(ctx)
	if err != nil {
		h.Errors.LogServerError(w, r, "list projects: query failed", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(projects)
}

// HandleProjectDetail handles GET /api/projects/{projectId} (any
// signed-in user). The team comes back expanded with each member's
// account, so the roster renders without extra lookups.
func (h *Handler) HandleProjectDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := projectstore.New(h.DB).GetByProjectID(ctx, chi.URLParam(r, "projectId"))
	if err != nil {
		if err == projectstore.ErrNotFound {
			httperr.NotFound(w, "Project not found")
			return
		}
		h.Errors.LogServerError(w, r, "project detail: lookup failed", err)
		return
	}

	team, err := teammembers.ListTeamMembers(ctx, h.DB, project.ID)
	if err != nil {
		h.Errors.LogServerError(w, r, "project detail: team query failed", err)
		return
	}
	if team == nil {
		team = []teammembers.TeamMemberInfo{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"project": project,
		"team":    team,
	})
}
