// internal/app/features/bugs/assign.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignBugRequest struct {
	BugID       string `json:"bugId"`
	DeveloperID string `json:"developerId"`
}

// HandleAssignBug handles POST /api/bugs/assign (admins). Points a bug
// at a single developer and moves it to assigned status, overriding any
// earlier auto-assignment.
func (h *Handler) HandleAssignBug(w http.ResponseWriter, r *http.Request) {
	var req assignBugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if req.BugID == "" || req.DeveloperID == "" {
		httperr.BadRequest(w, "BugId and DeveloperId required")
		return
	}
	bugID, err := primitive.ObjectIDFromHex(req.BugID)
	if err != nil {
		httperr.BadRequest(w, "Invalid bug id")
		return
	}
	devID, err := primitive.ObjectIDFromHex(req.DeveloperID)
	if err != nil {
		httperr.BadRequest(w, "Invalid developer id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := userstore.New(h.DB).GetByID(ctx, devID); err != nil {
		if err == userstore.ErrNotFound {
			httperr.NotFound(w, "User not found")
			return
		}
		h.Errors.LogServerError(w, r, "assign bug: user lookup failed", err)
		return
	}

	if err := bugstore.New(h.DB).Assign(ctx, bugID, devID); err != nil {
		if err == bugstore.ErrNotFound {
			httperr.NotFound(w, "Bug not found")
			return
		}
		h.Errors.LogServerError(w, r, "assign bug: update failed", err)
		return
	}

	h.Log.Info("bug assigned",
		zap.String("bug_id", bugID.Hex()),
		zap.String("developer_id", devID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bug assigned successfully"})
}
