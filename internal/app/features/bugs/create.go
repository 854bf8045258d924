// internal/app/features/bugs/create.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/bughub/internal/app/policy/assignpolicy"
	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	projectstore "github.com/dalemusser/bughub/internal/app/store/projects"
	"github.com/dalemusser/bughub/internal/app/system/gates"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.uber.org/zap"
)

type createBugRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"` // human-assigned project id, optional
	BugType     string `json:"bugType"`
	Severity    string `json:"severity"`
}

// HandleCreateBug handles POST /api/bugs (testers).
//
// When the report names a project, the bug is auto-assigned from the
// project's roster by bug type before it is stored: the first member
// holding the type's functional role, else the first member. A report
// against an unknown project is rejected whole; no bug is created.
func (h *Handler) HandleCreateBug(w http.ResponseWriter, r *http.Request) {
	caller := gates.RequireAuth(w, r)
	if !caller.OK {
		return
	}

	var req createBugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		httperr.BadRequest(w, "Title and description are required")
		return
	}
	if req.BugType != "" && !models.ValidBugType(req.BugType) {
		httperr.BadRequest(w, "Invalid bug type")
		return
	}
	if req.Severity != "" && !models.ValidSeverity(req.Severity) {
		httperr.BadRequest(w, "Invalid severity value")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bug := models.Bug{
		Title:       req.Title,
		Description: req.Description,
		BugType:     req.BugType,
		Severity:    req.Severity,
		CreatedBy:   caller.UserID,
		Status:      models.StatusOpen,
	}

	if req.ProjectID != "" {
		project, err := projectstore.New(h.DB).GetByProjectID(ctx, req.ProjectID)
		if err != nil {
			if err == projectstore.ErrNotFound {
				httperr.NotFound(w, "Project not found")
				return
			}
			h.Errors.LogServerError(w, r, "create bug: project lookup failed", err)
			return
		}

		bug.Project = &project.ID
		bugType := bug.BugType
		if bugType == "" {
			bugType = models.BugTypeOther
		}
		assignee, team := assignpolicy.ChooseAssignee(project.Team, bugType)
		bug.AssignedTo = assignee
		bug.AssignedToTeam = team
		if assignee != nil {
			bug.Status = models.StatusAssigned
		}
	}

	created, err := bugstore.New(h.DB).Create(ctx, bug)
	if err != nil {
		h.Errors.LogServerError(w, r, "create bug: insert failed", err)
		return
	}

	h.Log.Info("bug created",
		zap.String("bug_id", created.ID.Hex()),
		zap.String("bug_type", created.BugType),
		zap.Bool("auto_assigned", created.AssignedTo != nil))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}
