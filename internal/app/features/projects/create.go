// internal/app/features/projects/create.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	projectstore "github.com/dalemusser/bughub/internal/app/store/projects"
	"github.com/dalemusser/bughub/internal/app/system/gates"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.uber.org/zap"
)

type createProjectRequest struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
}

// HandleCreateProject handles POST /api/projects (admins). The
// human-assigned project id is the stable handle clients use in URLs;
// it must be unique.
func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	caller := gates.RequireAuth(w, r)
	if !caller.OK {
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	if req.ProjectID == "" || req.ProjectName == "" {
		httperr.BadRequest(w, "Project ID and Name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := projectstore.New(h.DB).Create(ctx, models.Project{
		ProjectID:   req.ProjectID,
		Name:        req.ProjectName,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   caller.UserID,
	})
	if err != nil {
		if err == projectstore.ErrDuplicateProjectID {
			httperr.BadRequest(w, "Project ID already exists")
			return
		}
		h.Errors.LogServerError(w, r, "create project: insert failed", err)
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", created.ProjectID),
		zap.String("name", created.Name))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Project created successfully",
		"project": created,
	})
}
