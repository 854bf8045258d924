package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// FixturePassword is the plaintext behind every fixture user's stored
// hash, for login tests.
const FixturePassword = "password123"

// CreateUser creates a test user with the given account role. The stored
// hash is bcrypt(FixturePassword) at MinCost to keep fixtures fast.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateDeveloper creates a test developer user.
func (f *Fixtures) CreateDeveloper(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleDeveloper)
}

// CreateTester creates a test tester user.
func (f *Fixtures) CreateTester(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleTester)
}

// CreateDeactivatedUser creates a test user with IsActive=false.
func (f *Fixtures) CreateDeactivatedUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email, role)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"is_active": false}}); err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	u.IsActive = false
	return u
}

// CreateProject creates a test project with an empty team.
func (f *Fixtures) CreateProject(ctx context.Context, projectID, name string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Name:      name,
		NameCI:    text.Fold(name),
		Team:      []models.TeamMember{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateProjectWithTeam creates a test project whose team contains the
// given members, in order. Insertion order matters: auto-assignment falls
// back to the first member.
func (f *Fixtures) CreateProjectWithTeam(ctx context.Context, projectID, name string, team []models.TeamMember) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	for i := range team {
		if team[i].AddedDate.IsZero() {
			team[i].AddedDate = now
		}
	}
	project := models.Project{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Name:      name,
		NameCI:    text.Fold(name),
		Team:      team,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateBug creates a test bug with the given creator and fields.
func (f *Fixtures) CreateBug(ctx context.Context, title string, createdBy primitive.ObjectID, bug models.Bug) models.Bug {
	f.t.Helper()

	now := time.Now().UTC()
	bug.ID = primitive.NewObjectID()
	bug.Title = title
	if bug.Description == "" {
		bug.Description = "Test bug description"
	}
	if bug.Status == "" {
		bug.Status = models.StatusOpen
	}
	if bug.Severity == "" {
		bug.Severity = models.SeverityMedium
	}
	if bug.BugType == "" {
		bug.BugType = models.BugTypeOther
	}
	bug.CreatedBy = createdBy
	bug.CreatedAt = now
	bug.UpdatedAt = now

	if _, err := f.db.Collection("bugs").InsertOne(ctx, bug); err != nil {
		f.t.Fatalf("failed to create test bug: %v", err)
	}
	return bug
}
