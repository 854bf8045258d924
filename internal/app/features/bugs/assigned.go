// internal/app/features/bugs/assigned.go
package bugs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/bughub/internal/app/store/queries/bugqueries"
	"github.com/dalemusser/bughub/internal/app/store/queries/teammembers"
	"github.com/dalemusser/bughub/internal/app/system/gates"
	"github.com/dalemusser/bughub/internal/app/system/timeouts"
)

// HandleAssignedBugs handles GET /api/bugs/assigned (developers). Lists
// the caller's workload: directly assigned bugs plus team-assigned bugs
// on projects where the caller is on the roster.
func (h *Handler) HandleAssignedBugs(w http.ResponseWriter, r *http.Request) {
	caller := gates.RequireAuth(w, r)
	if !caller.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teamProjects, err := teammembers.ProjectIDsWithMember(ctx, h.DB, caller.UserID)
	if err != nil {
		h.Errors.LogServerError(w, r, "assigned bugs: membership lookup failed", err)
		return
	}

	bugs, err := bugqueries.ListAssignedExpanded(ctx, h.DB, caller.UserID, teamProjects)
	if err != nil {
		h.Errors.LogServerError(w, r, "assigned bugs: query failed", err)
		return
	}
	if bugs == nil {
		bugs = []bugqueries.ExpandedBug{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bugs)
}
