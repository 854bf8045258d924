// internal/domain/models/bug.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bug statuses. The status field is enum-validated only: any value may
// replace any other (there is no enforced transition graph). This is
// intentional; see DESIGN.md.
const (
	StatusOpen       = "open"
	StatusAssigned   = "assigned"
	StatusInProgress = "in-progress"
	StatusFixed      = "fixed"
)

// ValidStatus reports whether status is one of the four bug statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusFixed:
		return true
	}
	return false
}

// Bug severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ValidSeverity reports whether severity is one of the four levels.
func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Bug types. A bug's type drives auto-assignment only.
const (
	BugTypeUI       = "UI"
	BugTypeBackend  = "Backend"
	BugTypeDatabase = "Database"
	BugTypeDevOps   = "DevOps"
	BugTypeQA       = "QA"
	BugTypeOther    = "Other"
)

// ValidBugType reports whether bugType is one of the six bug types.
func ValidBugType(bugType string) bool {
	switch bugType {
	case BugTypeUI, BugTypeBackend, BugTypeDatabase, BugTypeDevOps, BugTypeQA, BugTypeOther:
		return true
	}
	return false
}

// Bug is the central mutable entity: a report filed by a tester against a
// project, worked through the status workflow by developers.
//
// NOTE:
//   - CreatedBy is immutable after creation.
//   - AssignedTo is informational when AssignedToTeam is set: the real
//     authorization boundary for status updates is project-team
//     membership plus functional-role match, not the recorded assignee.
type Bug struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Project     *primitive.ObjectID `bson:"project,omitempty" json:"project,omitempty"`
	Status      string              `bson:"status" json:"status"`     // open | assigned | in-progress | fixed
	Severity    string              `bson:"severity" json:"severity"` // low | medium | high | critical
	BugType     string              `bson:"bug_type" json:"bug_type"` // UI | Backend | Database | DevOps | QA | Other
	CreatedBy   primitive.ObjectID  `bson:"created_by" json:"created_by"`
	AssignedTo  *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`

	// AssignedToTeam marks a team-wide claim: any team member holding the
	// functional role the bug type requires may advance the status.
	AssignedToTeam bool `bson:"assigned_to_team" json:"assigned_to_team"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
