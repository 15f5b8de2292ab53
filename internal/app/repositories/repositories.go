package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	accountsCollection      = "accounts"
	refreshTokenCollection  = "refresh_tokens"
	profilesCollection      = "profiles"
	registrationsCollection = "registrations"
	teamsCollection         = "teams"
	paymentsCollection      = "event_payments"
)

// Repositories bundles all repository instances
type Repositories struct {
	Accounts      *AccountRepository
	Tokens        *TokenRepository
	Profiles      *ProfileRepository
	Registrations *RegistrationRepository
	Teams         *TeamRepository
	Payments      *PaymentRepository
}

// NewRepositories creates all repositories over one database handle
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Accounts:      NewAccountRepository(db),
		Tokens:        NewTokenRepository(db),
		Profiles:      NewProfileRepository(db),
		Registrations: NewRegistrationRepository(db),
		Teams:         NewTeamRepository(db),
		Payments:      NewPaymentRepository(db),
	}
}

// EnsureIndexes creates the indexes the query paths depend on
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	_, err := r.Accounts.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("accounts_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "provider_subject", Value: 1}},
			Options: options.Index().SetName("accounts_provider_subject"),
		},
	})
	if err != nil {
		return fmt.Errorf("accounts indexes: %w", err)
	}

	_, err = r.Tokens.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("refresh_tokens_ttl"),
		},
	})
	if err != nil {
		return fmt.Errorf("refresh token indexes: %w", err)
	}

	_, err = r.Registrations.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("registrations_event_user"),
		},
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("registrations_event_created"),
		},
	})
	if err != nil {
		return fmt.Errorf("registrations indexes: %w", err)
	}

	_, err = r.Teams.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "event_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("teams_event_name"),
		},
	})
	if err != nil {
		return fmt.Errorf("teams indexes: %w", err)
	}

	return nil
}

// eventScope builds the filter addressing one event under one club.
// Every registration, team, and payment read or write is scoped by it.
func eventScope(clubID, eventID string) bson.M {
	return bson.M{
		"club_id":  clubID,
		"event_id": eventID,
	}
}
