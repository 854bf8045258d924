// internal/app/features/bugs/list.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/bughub/internal/app/store/queries/bugqueries"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
)

// HandleListBugs handles GET /api/bugs (admins and viewers). Returns
// every bug with creator, assignee and project expanded.
func (h *Handler) HandleListBugs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bugs, err := bugqueries.ListExpanded(ctx, h.DB)
	if err != nil {
		h.Errors.LogServerError(w, r, "list bugs: query failed", err)
		return
	}
	if bugs == nil {
		bugs = []bugqueries.ExpandedBug{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bugs)
}
