// internal/app/policy/bugpolicy/bugpolicy.go
package bugpolicy

import (
	"context"
	"net/http"

	"github.com/dalemusser/bughub/internal/app/policy/assignpolicy"
	"github.com/dalemusser/bughub/internal/app/system/authz"
	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Denial reasons for status updates, surfaced verbatim as 403 messages.
const (
	ReasonNotAssigned = "Not your assigned bug"
	ReasonNotOnTeam   = "You are not part of this project team"
	ReasonWrongRole   = "You are not responsible for this bug type"
	ReasonNotSignedIn = "Authentication required"
)

// CanUpdateStatus reports whether the request user may change the bug's
// status:
//   - admins always can
//   - the directly recorded assignee can
//   - on a team-assigned bug, any roster member of the bug's project
//     whose functional role matches the bug type's required role can;
//     a bug type with no required role opens the bug to the whole roster
//
// A false result carries the denial reason for the 403 body. The error
// return is reserved for database failures, so callers can tell "not
// authorized" (false, reason, nil) from "check failed" (false, "", err).
func CanUpdateStatus(ctx context.Context, db *mongo.Database, r *http.Request, bug *models.Bug) (bool, string, error) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false, ReasonNotSignedIn, nil
	}
	if role == models.RoleAdmin {
		return true, "", nil
	}
	if bug.AssignedTo != nil && *bug.AssignedTo == uid {
		return true, "", nil
	}
	if !bug.AssignedToTeam || bug.Project == nil {
		return false, ReasonNotAssigned, nil
	}

	var project models.Project
	err := db.Collection("projects").FindOne(ctx, bson.M{"_id": *bug.Project}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, ReasonNotOnTeam, nil
		}
		return false, "", err
	}

	member, onTeam := project.Member(uid)
	if !onTeam {
		return false, ReasonNotOnTeam, nil
	}
	if required := assignpolicy.RequiredRole(bug.BugType); required != "" && member.Role != required {
		return false, ReasonWrongRole, nil
	}
	return true, "", nil
}
