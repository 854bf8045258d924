// internal/app/features/login/login.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/app/system/passwords"
	"github.com/dalemusser/bughub/internal/app/system/ratelimit"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	Role  string          `json:"role"`
	User  models.UserInfo `json:"user"`
}

// HandleLogin handles POST /api/auth/login. Verifies credentials and
// returns a bearer token with the account's role and profile.
//
// Unknown email and wrong password answer the same 401 so the endpoint
// does not leak which addresses have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "Invalid request body")
		return
	}
	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		httperr.BadRequest(w, "Email and password are required")
		return
	}

	if ok, msg := h.Limits.Check(r, req.Email); !ok {
		h.Log.Warn("login rate limited",
			zap.String("email", req.Email),
			zap.String("ip", ratelimit.ClientIP(r)))
		httperr.Write(w, http.StatusTooManyRequests, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httperr.Unauthorized(w, "Invalid credentials")
			return
		}
		h.Errors.LogServerError(w, r, "login: lookup failed", err)
		return
	}

	if !passwords.Verify(user.PasswordHash, req.Password) {
		httperr.Unauthorized(w, "Invalid credentials")
		return
	}
	if !user.IsActive {
		httperr.Unauthorized(w, "Account is deactivated")
		return
	}

	token, err := h.Tokens.IssueToken(user)
	if err != nil {
		h.Errors.LogServerError(w, r, "login: token issue failed", err)
		return
	}
	h.Limits.ResetEmail(req.Email)

	h.Log.Info("user logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{
		Token: token,
		Role:  user.Role,
		User:  user.Info(),
	})
}
