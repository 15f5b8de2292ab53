package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adisharma/clubhub/internal/app/models"
)

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	col *mongo.Collection
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{col: db.Collection(refreshTokenCollection)}
}

// Store persists a refresh token
func (r *TokenRepository) Store(ctx context.Context, token *models.RefreshToken) error {
	token.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// Find returns the stored refresh token, or nil if it was never issued
// or has been revoked
func (r *TokenRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.col.FindOne(ctx, bson.M{"_id": token}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rt, nil
}

// Delete revokes a refresh token. Deleting an unknown token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
