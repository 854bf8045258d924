// internal/app/features/projects/team.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	projectstore "github.com/dalemusser/bughub/internal/app/store/projects"
	"github.com/dalemusser/bughub/internal/app/store/queries/teammembers"
	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/gates"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type addTeamMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"` // free-text functional role label
}

type updateTeamRoleRequest struct {
	Role string `json:"role"`
}

// resolveProject loads the project named by the {projectId} URL
// parameter, answering 404 itself when missing.
func (h *Handler) resolveProject(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	project, err := projectstore.New(h.DB).GetByProjectID(ctx, chi.URLParam(r, "projectId"))
	if err != nil {
		if err == projectstore.ErrNotFound {
			httperr.NotFound(w, "Project not found")
			return nil, false
		}
		h.Errors.LogServerError(w, r, "team: project lookup failed", err)
		return nil, false
	}
	return project, true
}

// writeTeam answers with the refreshed, user-expanded roster.
func (h *Handler) writeTeam(ctx context.Context, w http.ResponseWriter, r *http.Request, projectID primitive.ObjectID, message string) {
	team, err := teammembers.ListTeamMembers(ctx, h.DB, projectID)
	if err != nil {
		h.Errors.LogServerError(w, r, "team: roster query failed", err)
		return
	}
	if team == nil {
		team = []teammembers.TeamMemberInfo{}
	}
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"team": team}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}

// HandleGetTeam handles GET /api/projects/{projectId}/team (any
// signed-in user).
func (h *Handler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}
	h.writeTeam(ctx, w, r, project.ID, "")
}

// HandleAddTeamMember handles POST /api/projects/{projectId}/team
// (admins). The functional role label is stored verbatim; it is what
// auto-assignment and the status gate match against, exactly.
func (h *Handler) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	caller := gates.RequireAuth(w, r)
	if !caller.OK {
		return
	}

	var req addTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Role) == "" {
		httperr.BadRequest(w, "UserId and role required")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	if _, err := userstore.New(h.DB).GetByID(ctx, memberID); err != nil {
		if err == userstore.ErrNotFound {
			httperr.NotFound(w, "User not found")
			return
		}
		h.Errors.LogServerError(w, r, "team add: user lookup failed", err)
		return
	}

	if err := projectstore.New(h.DB).AddTeamMember(ctx, project.ID, memberID, req.Role, caller.UserID); err != nil {
		switch err {
		case projectstore.ErrAlreadyMember:
			httperr.BadRequest(w, "User is already a team member")
		case projectstore.ErrNotFound:
			httperr.NotFound(w, "Project not found")
		default:
			h.Errors.LogServerError(w, r, "team add: update failed", err)
		}
		return
	}

	h.Log.Info("team member added",
		zap.String("project_id", project.ProjectID),
		zap.String("user_id", memberID.Hex()),
		zap.String("role", strings.TrimSpace(req.Role)))

	h.writeTeam(ctx, w, r, project.ID, "Team member added successfully")
}

// HandleUpdateTeamMemberRole handles
// PUT /api/projects/{projectId}/team/{userId} (admins).
func (h *Handler) HandleUpdateTeamMemberRole(w http.ResponseWriter, r *http.Request) {
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	var req updateTeamRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Role) == "" {
		httperr.BadRequest(w, "Role required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	if err := projectstore.New(h.DB).UpdateTeamMemberRole(ctx, project.ID, memberID, req.Role); err != nil {
		switch err {
		case projectstore.ErrMemberNotFound:
			httperr.NotFound(w, "Team member not found")
		case projectstore.ErrNotFound:
			httperr.NotFound(w, "Project not found")
		default:
			h.Errors.LogServerError(w, r, "team role update failed", err)
		}
		return
	}

	h.writeTeam(ctx, w, r, project.ID, "Team member role updated successfully")
}

// HandleRemoveTeamMember handles
// DELETE /api/projects/{projectId}/team/{userId} (admins). Removing a
// user who is not on the roster succeeds and changes nothing.
func (h *Handler) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, ok := h.resolveProject(ctx, w, r)
	if !ok {
		return
	}

	if err := projectstore.New(h.DB).RemoveTeamMember(ctx, project.ID, memberID); err != nil {
		if err == projectstore.ErrNotFound {
			httperr.NotFound(w, "Project not found")
			return
		}
		h.Errors.LogServerError(w, r, "team remove failed", err)
		return
	}

	h.writeTeam(ctx, w, r, project.ID, "Team member removed successfully")
}
