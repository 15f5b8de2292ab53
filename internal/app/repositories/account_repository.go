package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adisharma/clubhub/internal/app/models"
)

// AccountRepository handles database operations for authentication accounts
type AccountRepository struct {
	col *mongo.Collection
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(accountsCollection)}
}

// FindByEmail returns the account with the given email, or nil if none exists
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &acct, nil
}

// FindByID returns the account with the given id, or nil if none exists
func (r *AccountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var acct models.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &acct, nil
}

// Create inserts a new account and returns its generated id
func (r *AccountRepository) Create(ctx context.Context, acct *models.Account) (primitive.ObjectID, error) {
	acct.ID = primitive.NilObjectID
	acct.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, acct)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert account: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	acct.ID = id
	return id, nil
}

// UpsertProvider finds or creates the account for an external identity
// assertion, keyed by (provider, subject). Email and display name are
// refreshed from the assertion on every sign-in.
func (r *AccountRepository) UpsertProvider(ctx context.Context, provider, subject, email, displayName string) (*models.Account, error) {
	filter := bson.M{
		"provider":         provider,
		"provider_subject": subject,
	}
	update := bson.M{
		"$set": bson.M{
			"email":        email,
			"display_name": displayName,
		},
		"$setOnInsert": bson.M{
			"provider":         provider,
			"provider_subject": subject,
			"created_at":       time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var acct models.Account
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&acct); err != nil {
		return nil, fmt.Errorf("upsert provider account: %w", err)
	}
	return &acct, nil
}
