// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles. Role is the account-level role (who you are in the
// system); it is distinct from the free-text functional role a user
// carries on a project team ("Backend Developer", "QA Lead", ...).
const (
	RoleAdmin     = "admin"
	RoleDeveloper = "developer"
	RoleTester    = "tester"
	RoleViewer    = "viewer"
)

// ValidRole reports whether role is one of the four account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDeveloper, RoleTester, RoleViewer:
		return true
	}
	return false
}

// User represents an account: admins, developers, testers, and viewers.
//
// NOTE:
//   - PasswordHash is never serialized to JSON; API responses use the
//     UserInfo projection instead.
//   - Deactivation (IsActive=false) is the soft-removal mechanism; a
//     hard delete path exists for admins but deactivation is preferred.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | developer | tester | viewer
	IsActive     bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserInfo is the safe projection of a User for API responses that embed
// or list accounts (no password hash, no shadow fields).
type UserInfo struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"`
}

// Info returns the UserInfo projection of u.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
