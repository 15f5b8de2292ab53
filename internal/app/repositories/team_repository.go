package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adisharma/clubhub/internal/app/models"
)

// namePrefixSentinel closes the half-open range for prefix search on
// team names: [prefix, prefix+sentinel).
const namePrefixSentinel = ""

// TeamRepository handles database operations for event teams
type TeamRepository struct {
	col *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{col: db.Collection(teamsCollection)}
}

// Insert writes a new team document and returns its id.
// created_at is assigned by the database.
func (r *TeamRepository) Insert(ctx context.Context, team *models.Team) (string, error) {
	id := primitive.NewObjectID()
	update := bson.M{
		"$setOnInsert": bson.M{
			"event_id":   team.EventID,
			"club_id":    team.ClubID,
			"name":       team.Name,
			"members":    team.Members,
			"created_by": team.CreatedBy,
		},
		"$currentDate": bson.M{"created_at": true},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update, opts); err != nil {
		return "", fmt.Errorf("insert team: %w", err)
	}
	return id.Hex(), nil
}

// FindByID returns one team by id, or nil if it does not exist
func (r *TeamRepository) FindByID(ctx context.Context, clubID, eventID, id string) (*models.Team, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid team id %q: %w", id, err)
	}

	filter := eventScope(clubID, eventID)
	filter["_id"] = oid

	var team models.Team
	if err := r.col.FindOne(ctx, filter).Decode(&team); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &team, nil
}

// AddMember appends a member to the team's member list. The filter guards
// on the member being absent, so the append happens at most once and
// concurrent joins cannot overwrite each other. Returns false if no
// document matched (team missing or member already present); the caller
// disambiguates.
func (r *TeamRepository) AddMember(ctx context.Context, clubID, eventID, id string, member models.TeamMember) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid team id %q: %w", id, err)
	}

	filter := eventScope(clubID, eventID)
	filter["_id"] = oid
	filter["members.user_id"] = bson.M{"$ne": member.UserID}

	update := bson.M{
		"$push": bson.M{"members": member},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("add team member: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// SearchByNamePrefix returns the event's teams whose name starts with
// the given text. Matching is case-sensitive.
func (r *TeamRepository) SearchByNamePrefix(ctx context.Context, clubID, eventID, text string) ([]models.Team, error) {
	filter := eventScope(clubID, eventID)
	filter["name"] = teamNameRange(text)

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.Team
	for cur.Next(ctx) {
		var team models.Team
		if err := cur.Decode(&team); err != nil {
			return nil, fmt.Errorf("decode team: %w", err)
		}
		result = append(result, team)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("search teams cursor: %w", err)
	}
	return result, nil
}

// teamNameRange builds the range filter for a prefix match on name
func teamNameRange(text string) bson.M {
	return bson.M{
		"$gte": text,
		"$lt":  text + namePrefixSentinel,
	}
}
