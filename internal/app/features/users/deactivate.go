// internal/app/features/users/deactivate.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type deactivateRequest struct {
	UserID string `json:"userId"`
}

// HandleDeactivate handles PUT /api/users/deactivate (admins).
// Deactivation is the soft removal: the account fails login from the
// next attempt, while bugs and team rosters keep referencing it.
// Outstanding tokens stay valid until they expire.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	var req deactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" {
		httperr.BadRequest(w, "UserId required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := userstore.New(h.DB).Deactivate(ctx, userID); err != nil {
		if err == userstore.ErrNotFound {
			httperr.NotFound(w, "User not found")
			return
		}
		h.Errors.LogServerError(w, r, "deactivate: update failed", err)
		return
	}

	h.Log.Info("user deactivated", zap.String("user_id", userID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "User deactivated successfully"})
}
