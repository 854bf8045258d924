package teammembers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/bughub/internal/domain/models"
)

// TeamMemberInfo pairs a roster entry with the resolved account, for
// project detail responses.
type TeamMemberInfo struct {
	User      models.UserInfo `bson:"user" json:"user"`
	Role      string          `bson:"role" json:"role"`
	AddedDate time.Time       `bson:"added_date" json:"added_date"`
}

// ListTeamMembers returns a project's roster with each member's account
// resolved, in roster order. Entries whose account was hard-deleted are
// dropped by the join.
func ListTeamMembers(ctx context.Context, db *mongo.Database, projectID primitive.ObjectID) ([]TeamMemberInfo, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": projectID}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":              "$team",
			"includeArrayIndex": "team_order",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "team.user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "team_order", Value: 1}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"user":       "$user",
			"role":       "$team.role",
			"added_date": "$team.added_date",
		}}},
	}

	cur, err := db.Collection("projects").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []TeamMemberInfo
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectIDsWithMember returns the ids of projects whose team includes
// the user. Feeds the "bugs assigned to me" listing.
func ProjectIDsWithMember(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := db.Collection("projects").Find(ctx,
		bson.M{"team.user_id": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}
