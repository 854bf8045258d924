// internal/app/features/users/password.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/passwords"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type setPasswordRequest struct {
	Password string `json:"password"`
}

// HandleSetPassword handles PUT /api/users/{id}/password (admins).
// Admin-driven reset; there is no self-service flow. Outstanding tokens
// are unaffected.
func (h *Handler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httperr.BadRequest(w, "Invalid user id")
		return
	}

	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.Password) < passwords.MinLength {
		httperr.BadRequest(w, "Password must be at least 6 characters")
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		h.Errors.LogServerError(w, r, "set password: hash failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := userstore.New(h.DB).SetPassword(ctx, userID, hash); err != nil {
		if err == userstore.ErrNotFound {
			httperr.NotFound(w, "User not found")
			return
		}
		h.Errors.LogServerError(w, r, "set password: update failed", err)
		return
	}

	h.Log.Info("user password reset", zap.String("user_id", userID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Password updated successfully"})
}
