// internal/app/features/users/create.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/authz"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/app/system/passwords"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser handles POST /api/users.
//
// Normally admin-only, with one exception: while no admin account
// exists anyone may create a user, so a fresh install can seed itself.
// The route therefore loads the token without requiring one, and the
// admin check lives here.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	req.Role = normalize.Role(req.Role)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		httperr.BadRequest(w, "All fields required")
		return
	}
	if !models.ValidRole(req.Role) {
		httperr.BadRequest(w, "Invalid role value")
		return
	}
	if len(req.Password) < passwords.MinLength {
		httperr.BadRequest(w, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	admins, err := users.CountAdmins(ctx)
	if err != nil {
		h.Errors.LogServerError(w, r, "create user: admin count failed", err)
		return
	}
	if admins > 0 && !authz.IsAdmin(r) {
		httperr.Forbidden(w, "Only admin can create users")
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		h.Errors.LogServerError(w, r, "create user: password hash failed", err)
		return
	}

	user, err := users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httperr.BadRequest(w, "User already exists")
			return
		}
		h.Errors.LogServerError(w, r, "create user: insert failed", err)
		return
	}

	h.Log.Info("user created",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "User created successfully",
		"user":    user.Info(),
	})
}
