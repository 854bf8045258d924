// internal/app/features/users/delete.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/gates"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDeleteUser handles DELETE /api/users/{id} (admins). Hard
// removal; prefer deactivation, which keeps bug and roster references
// resolvable. Admins cannot delete their own account.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := gates.RequireAuth(w, r)
	if !caller.OK {
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}
	if userID == caller.UserID {
		httperr.BadRequest(w, "You cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := userstore.New(h.DB).Delete(ctx, userID)
	if err != nil {
		h.Errors.LogServerError(w, r, "delete user: delete failed", err)
		return
	}
	if deleted == 0 {
		httperr.NotFound(w, "User not found")
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", userID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "User deleted successfully"})
}
