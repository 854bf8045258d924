package assignpolicy

import (
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requiredRoles maps a bug type to the functional role label that should
// own it on a project team. Labels are matched exactly, case included;
// they are the same strings admins assign when building a roster.
// BugTypeOther carries no role requirement.
var requiredRoles = map[string]string{
	models.BugTypeUI:       "UI Designer",
	models.BugTypeBackend:  "Backend Developer",
	models.BugTypeDatabase: "Database Administrator",
	models.BugTypeDevOps:   "DevOps Engineer",
	models.BugTypeQA:       "QA Lead",
}

// RequiredRole returns the functional role label a bug type calls for,
// or "" when any team member may take it.
func RequiredRole(bugType string) string {
	return requiredRoles[bugType]
}

// ChooseAssignee picks who should own a bug when it is attached to a
// project with the given roster:
//   - the first member whose role label matches the bug type's required
//     role, in roster order
//   - otherwise the first member, so nothing sits unowned on a staffed
//     project
//   - nil when the team is empty
//
// team reports whether the pick is a team-wide claim. It is true
// whenever the roster is non-empty: status updates on the bug are then
// authorized by roster membership and role match, not by the recorded
// assignee alone.
func ChooseAssignee(roster []models.TeamMember, bugType string) (assignee *primitive.ObjectID, team bool) {
	if len(roster) == 0 {
		return nil, false
	}
	if required := RequiredRole(bugType); required != "" {
		for i := range roster {
			if roster[i].Role == required {
				return &roster[i].UserID, true
			}
		}
	}
	return &roster[0].UserID, true
}
