package bugqueries

import (
	"context"

	"github.com/dalemusser/bughub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProjectRef is the slice of a project that bug listings embed.
type ProjectRef struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID string             `bson:"project_id" json:"project_id"`
	Name      string             `bson:"name" json:"name"`
}

// ExpandedBug is a bug with its creator, assignee and project resolved
// for API responses, so clients never chase ids themselves.
type ExpandedBug struct {
	models.Bug `bson:",inline"`

	Creator     *models.UserInfo `bson:"creator,omitempty" json:"creator,omitempty"`
	Assignee    *models.UserInfo `bson:"assignee,omitempty" json:"assignee,omitempty"`
	ProjectInfo *ProjectRef      `bson:"project_info,omitempty" json:"project_info,omitempty"`
}

// expansion is the shared pipeline tail: resolve created_by, assigned_to
// and project, keeping bugs whose references are missing or unset.
func expansion() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "created_by",
			"foreignField": "_id",
			"as":           "creator",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$creator",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "assigned_to",
			"foreignField": "_id",
			"as":           "assignee",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$assignee",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "projects",
			"localField":   "project",
			"foreignField": "_id",
			"as":           "project_info",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$project_info",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
	}
}

func run(ctx context.Context, db *mongo.Database, pipe mongo.Pipeline) ([]ExpandedBug, error) {
	cur, err := db.Collection("bugs").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ExpandedBug
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExpanded returns every bug with its references resolved, newest
// first.
func ListExpanded(ctx context.Context, db *mongo.Database) ([]ExpandedBug, error) {
	return run(ctx, db, expansion())
}

// ListExpandedByProject returns a project's bugs with references
// resolved, newest first.
func ListExpandedByProject(ctx context.Context, db *mongo.Database, projectID primitive.ObjectID) ([]ExpandedBug, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"project": projectID}}},
	}
	return run(ctx, db, append(pipe, expansion()...))
}

// ListAssignedExpanded returns the bugs a user is responsible for:
// directly assigned bugs plus team-assigned bugs on projects whose team
// includes the user. teamProjects holds the ids of those projects.
func ListAssignedExpanded(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, teamProjects []primitive.ObjectID) ([]ExpandedBug, error) {
	clauses := []bson.M{{"assigned_to": userID}}
	if len(teamProjects) > 0 {
		clauses = append(clauses, bson.M{
			"assigned_to_team": true,
			"project":          bson.M{"$in": teamProjects},
		})
	}
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"$or": clauses}}},
	}
	return run(ctx, db, append(pipe, expansion()...))
}

// GetExpanded returns one bug with its references resolved.
func GetExpanded(ctx context.Context, db *mongo.Database, bugID primitive.ObjectID) (*ExpandedBug, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": bugID}}},
	}
	out, err := run(ctx, db, append(pipe, expansion()...))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &out[0], nil
}
