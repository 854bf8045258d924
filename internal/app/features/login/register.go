// internal/app/features/login/register.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/app/system/passwords"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister handles POST /api/auth/register.
//
// Open registration exists only to bootstrap an empty install: while no
// admin account exists, the first registration creates one. Once an
// admin exists the endpoint is closed and accounts come from
// POST /api/users.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httperr.BadRequest(w, "All fields required")
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
		h.Errors.LogServerError(w, r, "register: admin count failed", err)
		return
	}
	if admins > 0 {
		httperr.Forbidden(w, "Registration is disabled")
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		h.Errors.LogServerError(w, r, "register: password hash failed", err)
		return
	}

	user, err := users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httperr.BadRequest(w, "User already exists")
			return
		}
		h.Errors.LogServerError(w, r, "register: create failed", err)
		return
	}

	h.Log.Info("bootstrap admin registered", zap.String("email", user.Email))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "User created successfully",
		"user":    user.Info(),
	})
}
