package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bughub/internal/app/system/normalize"
	"github.com/dalemusser/bughub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var (
	// ErrDuplicateProjectID is returned when the human-assigned project id
	// is already taken.
	ErrDuplicateProjectID = errors.New("Project ID already exists")
	// ErrNotFound is returned when a project does not resolve.
	ErrNotFound = errors.New("Project not found")
	// ErrAlreadyMember is returned by AddTeamMember when the user already
	// appears in the project's team.
	ErrAlreadyMember = errors.New("User is already a team member")
	// ErrMemberNotFound is returned by UpdateTeamMemberRole when the user
	// is not on the team.
	ErrMemberNotFound = errors.New("Team member not found")

	errEmptyRole = errors.New("Team role is required")
)

// Create inserts a new project with an empty team.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.ProjectID = normalize.Name(p.ProjectID)
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	if p.Team == nil {
		p.Team = []models.TeamMember{}
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateProjectID
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by its Mongo ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByProjectID loads a project by its human-assigned project id.
func (s *Store) GetByProjectID(ctx context.Context, projectID string) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ProjectIDExists reports whether a project with the given human-assigned
// id already exists.
func (s *Store) ProjectIDExists(ctx context.Context, projectID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"project_id": projectID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// List returns all projects ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "name_ci", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// AddTeamMember appends a member to the project's team. The duplicate
// check happens at write time by checking the loaded team; concurrent
// adds race with last-write-wins semantics at the document level, which
// matches the rest of the system.
func (s *Store) AddTeamMember(ctx context.Context, projectID primitive.ObjectID, userID primitive.ObjectID, role string, addedBy primitive.ObjectID) error {
	role = normalize.TeamRole(role)
	if role == "" {
		return errEmptyRole
	}

	p, err := s.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, ok := p.Member(userID); ok {
		return ErrAlreadyMember
	}

	member := models.TeamMember{
		UserID:    userID,
		Role:      role,
		AddedBy:   addedBy,
		AddedDate: time.Now(),
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{
		"$push": bson.M{"team": member},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveTeamMember removes the user's entry from the project's team.
// Removing an absent member is a no-op.
func (s *Store) RemoveTeamMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{
		"$pull": bson.M{"team": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTeamMemberRole changes the functional role label on an existing
// team entry. Fails with ErrMemberNotFound when the user is not on the
// team.
func (s *Store) UpdateTeamMemberRole(ctx context.Context, projectID, userID primitive.ObjectID, role string) error {
	role = normalize.TeamRole(role)
	if role == "" {
		return errEmptyRole
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": projectID, "team.user_id": userID},
		bson.M{"$set": bson.M{
			"team.$.role": role,
			"updated_at":  time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing project from a missing member.
		if _, err := s.GetByID(ctx, projectID); err != nil {
			return err
		}
		return ErrMemberNotFound
	}
	return nil
}
