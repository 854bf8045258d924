// internal/app/features/users/list.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/dalemusser/bughub/internal/domain/models"
)

// listedUser is the admin listing row: the safe projection plus the
// active flag, which admins need to tell live accounts from
// deactivated ones.
type listedUser struct {
	models.UserInfo
	IsActive bool `json:"is_active"`
}

// HandleListUsers handles GET /api/users?role= (admins). Without the
// role query every account is returned; password hashes are never
// serialized.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	role := normalize.Role(r.URL.Query().Get("role"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).ListByRole(ctx, role)
	if err != nil {
		h.Errors.LogServerError(w, r, "list users: query failed", err)
		return
	}

	infos := make([]listedUser, 0, len(users))
	for i := range users {
		infos = append(infos, listedUser{UserInfo: users[i].Info(), IsActive: users[i].IsActive})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(infos)
}
