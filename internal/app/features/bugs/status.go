// internal/app/features/bugs/status.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/bughub/internal/app/policy/bugpolicy"
	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateStatusRequest struct {
	BugID  string `json:"bugId"`
	Status string `json:"status"`
}

// HandleUpdateStatus handles PUT /api/bugs/status (developers; admins
// may always update). The bugpolicy gate decides whether the caller may
// touch this particular bug; a denial leaves the stored status
// untouched and names the reason in the 403 body.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if req.BugID == "" || req.Status == "" {
		httperr.BadRequest(w, "bugId and status are required")
		return
	}
	if !models.ValidStatus(req.Status) {
		httperr.BadRequest(w, "Invalid status value")
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
		h.Errors.LogServerError(w, r, "update status: bug lookup failed", err)
		return
	}

	allowed, reason, err := bugpolicy.CanUpdateStatus(ctx, h.DB, r, bug)
	if err != nil {
		h.Errors.LogServerError(w, r, "update status: policy check failed", err)
		return
	}
	if !allowed {
		if reason == bugpolicy.ReasonNotSignedIn {
			httperr.Unauthorized(w, reason)
			return
		}
		httperr.Forbidden(w, reason)
		return
	}

	if err := bugsStore.UpdateStatus(ctx, bugID, req.Status); err != nil {
		h.Errors.LogServerError(w, r, "update status: update failed", err)
		return
	}
	bug.Status = req.Status

	h.Log.Info("bug status updated",
		zap.String("bug_id", bugID.Hex()),
		zap.String("status", req.Status))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Status updated",
		"bug":     bug,
	})
}
