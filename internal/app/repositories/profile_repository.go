package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for user profiles.
// Profiles are keyed by the account id of the authenticated user.
type ProfileRepository struct {
	col *mongo.Collection
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(profilesCollection)}
}

// Get returns the stored profile, or nil if no document exists
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &user, nil
}

// GetRaw returns the stored profile document as-is, or nil if none exists
func (r *ProfileRepository) GetRaw(ctx context.Context, userID string) (bson.M, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw profile: %w", err)
	}
	return doc, nil
}

// Set writes the full profile document at the user's id, replacing any
// previous document.
func (r *ProfileRepository) Set(ctx context.Context, userID string, doc bson.M) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// Merge merges the given fields into the existing profile document.
// Fails if no document exists for the user.
func (r *ProfileRepository) Merge(ctx context.Context, userID string, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("merge profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrResourceNotFound, "profile not found")
	}
	return nil
}
