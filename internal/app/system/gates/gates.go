// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, writing the appropriate
// JSON error when checks fail.
//
// # Three-Tier Authorization Pattern
//
// BugHub uses a three-tier authorization approach:
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireRole)
//     Applied in routes.go files for coarse-grained access control.
//     When middleware handles role checking, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need role checks WITHOUT route-level
//     middleware, or need different role requirements than the route
//     group. Gates write the JSON error and return user context.
//
//  3. Policy Layer (internal/app/policy/*)
//     Used for resource-specific authorization requiring database
//     lookups, e.g. bugpolicy deciding whether a developer may change a
//     specific bug's status. Policies return decisions; callers handle
//     response writing.
//
// Don't use gates in handlers that are behind role-specific middleware.
// If routes.go has RequireRole("admin"), handlers don't need
// gates.RequireAdmin; use authz.UserCtx(r) to get user context without
// re-checking.
package gates

import (
	"net/http"

	"github.com/dalemusser/bughub/internal/app/system/authz"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not, it writes a JSON 401 and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httperr.Unauthorized(w, "Authentication required")
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and has the admin role.
// Missing user → 401; wrong role → 403 with the provided message.
func RequireAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httperr.Unauthorized(w, "Authentication required")
		return Result{OK: false}
	}
	if role != "admin" {
		httperr.Forbidden(w, forbiddenMsg)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAnyRole ensures the user is authenticated and has one of the
// specified roles. Missing user → 401; role not in the allowed list →
// 403 with the provided message.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg string, allowedRoles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		httperr.Unauthorized(w, "Authentication required")
		return Result{OK: false}
	}

	for _, allowed := range allowedRoles {
		if role == allowed {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}

	httperr.Forbidden(w, forbiddenMsg)
	return Result{OK: false}
}
