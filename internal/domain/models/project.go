// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a tracked project with an embedded team roster.
//
// NOTE:
//   - The team is an ordered array scanned linearly; insertion order is
//     meaningful (auto-assignment falls back to the first member) and
//     team sizes are small, so no index or join collection is used.
//   - A user appears at most once in Team; the project store enforces
//     this at write time.
type Project struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID   string             `bson:"project_id" json:"project_id"` // human-assigned, unique
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`

	Team []TeamMember `bson:"team" json:"team"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember is one entry in a project's team roster. Role is a free-text
// functional role label ("Backend Developer", "UI Designer", ...), not an
// account role.
type TeamMember struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role      string             `bson:"role" json:"role"`
	AddedBy   primitive.ObjectID `bson:"added_by,omitempty" json:"added_by,omitempty"`
	AddedDate time.Time          `bson:"added_date" json:"added_date"`
}

// Member returns the team entry for userID, if present.
func (p *Project) Member(userID primitive.ObjectID) (TeamMember, bool) {
	for _, m := range p.Team {
		if m.UserID == userID {
			return m, true
		}
	}
	return TeamMember{}, false
}
