package bugstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bugs")}
}

var (
	// ErrNotFound is returned when a bug does not resolve.
	ErrNotFound = errors.New("Bug not found")

	errEmptyTitle  = errors.New("Title is required")
	errBadStatus   = errors.New("Invalid status value")
	errBadSeverity = errors.New("Invalid severity value")
	errBadBugType  = errors.New("Invalid bug type")
)

// Create inserts a new bug report. Status defaults to open, severity to
// medium and bug type to Other when unset. Assignment fields are taken
// as given; auto-assignment is decided by the caller before the insert.
func (s *Store) Create(ctx context.Context, b models.Bug) (models.Bug, error) {
	b.ID = primitive.NewObjectID()
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	if b.Title == "" {
		return models.Bug{}, errEmptyTitle
	}

	if b.Status == "" {
		b.Status = models.StatusOpen
	}
	if b.Severity == "" {
		b.Severity = models.SeverityMedium
	}
	if b.BugType == "" {
		b.BugType = models.BugTypeOther
	}
	if !models.ValidStatus(b.Status) {
		return models.Bug{}, errBadStatus
	}
	if !models.ValidSeverity(b.Severity) {
		return models.Bug{}, errBadSeverity
	}
	if !models.ValidBugType(b.BugType) {
		return models.Bug{}, errBadBugType
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Bug{}, err
	}
	return b, nil
}

// GetByID loads a bug by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bug, error) {
	var b models.Bug
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all bugs, newest first.
func (s *Store) List(ctx context.Context) ([]models.Bug, error) {
	return s.find(ctx, bson.M{})
}

// ListByProject returns the bugs filed against a project, newest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Bug, error) {
	return s.find(ctx, bson.M{"project": projectID})
}

// ListAssignedTo returns bugs the user is responsible for: directly
// assigned ones, plus team-assigned bugs on any of the given projects.
// teamProjects holds the ids of projects whose team includes the user.
func (s *Store) ListAssignedTo(ctx context.Context, userID primitive.ObjectID, teamProjects []primitive.ObjectID) ([]models.Bug, error) {
	clauses := []bson.M{{"assigned_to": userID}}
	if len(teamProjects) > 0 {
		clauses = append(clauses, bson.M{
			"assigned_to_team": true,
			"project":          bson.M{"$in": teamProjects},
		})
	}
	return s.find(ctx, bson.M{"$or": clauses})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Bug, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bugs []models.Bug
	if err := cur.All(ctx, &bugs); err != nil {
		return nil, err
	}
	return bugs, nil
}

// Assign points the bug at a single user and moves it to assigned
// status. Clears any team assignment.
func (s *Store) Assign(ctx context.Context, bugID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": bugID}, bson.M{
		"$set": bson.M{
			"assigned_to":      userID,
			"assigned_to_team": false,
			"status":           models.StatusAssigned,
			"updated_at":       time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignProject attaches the bug to a project and records the
// team-assignment outcome decided by the caller. assignedTo may be nil
// when no team member holds the required functional role.
func (s *Store) AssignProject(ctx context.Context, bugID, projectID primitive.ObjectID, assignedTo *primitive.ObjectID, team bool) error {
	set := bson.M{
		"project":          projectID,
		"assigned_to_team": team,
		"updated_at":       time.Now(),
	}
	if assignedTo != nil {
		set["assigned_to"] = *assignedTo
		set["status"] = models.StatusAssigned
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": bugID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets the bug's status. The same status applied twice is
// fine; only the enum is validated here.
func (s *Store) UpdateStatus(ctx context.Context, bugID primitive.ObjectID, status string) error {
	if !models.ValidStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": bugID}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the bug. Deleting a missing bug returns ErrNotFound
// and leaves the collection untouched.
func (s *Store) Delete(ctx context.Context, bugID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": bugID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
