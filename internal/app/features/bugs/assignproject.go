// internal/app/features/bugs/assignproject.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/bughub/internal/app/policy/assignpolicy"
	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	projectstore "github.com/dalemusser/bughub/internal/app/store/projects"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignProjectRequest struct {
	BugID     string `json:"bugId"`
	ProjectID string `json:"projectId"` // human-assigned project id
}

// HandleAssignProject handles POST /api/bugs/assign-project (admins).
// Links a bug to a project and re-runs auto-assignment against the
// project's roster, the same pick a tester's project-bound report gets
// at creation.
func (h *Handler) HandleAssignProject(w http.ResponseWriter, r *http.Request) {
	var req assignProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if req.BugID == "" || req.ProjectID == "" {
		httperr.BadRequest(w, "BugId and ProjectId required")
		return
	}
	bugID, err := primitive.ObjectIDFromHex(req.BugID)
	if err != nil {
		httperr.BadRequest(w, "Invalid bug id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bugsStore := bugstore.New(h.DB)
	bug, err := bugsStore.GetByID(ctx, bugID)
	if err != nil {
		if err == bugstore.ErrNotFound {
			httperr.NotFound(w, "Bug not found")
			return
		}
		h.Errors.LogServerError(w, r, "assign project: bug lookup failed", err)
		return
	}

	project, err := projectstore.New(h.DB).GetByProjectID(ctx, req.ProjectID)
	if err != nil {
		if err == projectstore.ErrNotFound {
			httperr.NotFound(w, "Project not found")
			return
		}
		h.Errors.LogServerError(w, r, "assign project: project lookup failed", err)
		return
	}

	bugType := bug.BugType
	if bugType == "" {
		bugType = models.BugTypeOther
	}
	assignee, team := assignpolicy.ChooseAssignee(project.Team, bugType)

	if err := bugsStore.AssignProject(ctx, bugID, project.ID, assignee, team); err != nil {
		if err == bugstore.ErrNotFound {
			httperr.NotFound(w, "Bug not found")
			return
		}
		h.Errors.LogServerError(w, r, "assign project: update failed", err)
		return
	}

	h.Log.Info("bug linked to project",
		zap.String("bug_id", bugID.Hex()),
		zap.String("project_id", project.ProjectID),
		zap.Bool("auto_assigned", assignee != nil))

	updated, err := bugsStore.GetByID(ctx, bugID)
	if err != nil {
		h.Errors.LogServerError(w, r, "assign project: reload failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Project assigned successfully",
		"bug":     updated,
	})
}
