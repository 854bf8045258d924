// internal/app/features/bugs/delete.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDeleteBug handles DELETE /api/bugs/{id} (admins). Deleting a
// bug that does not exist answers 404 and removes nothing.
func (h *Handler) HandleDeleteBug(w http.ResponseWriter, r *http.Request) {
	bugID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httperr.BadRequest(w, "Invalid bug id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := bugstore.New(h.DB).Delete(ctx, bugID); err != nil {
		if err == bugstore.ErrNotFound {
			httperr.NotFound(w, "Bug not found")
			return
		}
		h.Errors.LogServerError(w, r, "delete bug: delete failed", err)
		return
	}

	h.Log.Info("bug deleted", zap.String("bug_id", bugID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bug deleted successfully"})
}
