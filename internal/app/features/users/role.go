// internal/app/features/users/role.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// HandleUpdateRole handles PUT /api/users/role (admins). Changes an
// account's role; the new role takes effect on the user's next token
// since role travels in the token claims.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.Role = normalize.Role(req.Role)
	if req.UserID == "" || req.Role == "" {
		httperr.BadRequest(w, "UserId and role required")
		return
	}
	if !models.ValidRole(req.Role) {
		httperr.BadRequest(w, "Invalid role value")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := userstore.New(h.DB).UpdateRole(ctx, userID, req.Role); err != nil {
		if err == userstore.ErrNotFound {
			httperr.NotFound(w, "User not found")
			return
		}
		h.Errors.LogServerError(w, r, "update role: update failed", err)
		return
	}

	h.Log.Info("user role updated",
		zap.String("user_id", userID.Hex()),
		zap.String("role", req.Role))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "User role updated successfully"})
}
