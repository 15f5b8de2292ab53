package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adisharma/clubhub/internal/app/models"
)

// ProfileStore is the profile persistence boundary used by ProfileService
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	GetRaw(ctx context.Context, userID string) (bson.M, error)
	Set(ctx context.Context, userID string, doc bson.M) error
	Merge(ctx context.Context, userID string, fields bson.M) error
}

// ProfileService manages the application-level user profile stored
// alongside each authentication account.
//
// Reads follow the "profile is optional" policy: a missing document and a
// failed read both come back as a nil profile with no error, so rendering
// paths never crash on a transient read failure. Writes propagate errors.
type ProfileService interface {
	Get(ctx context.Context, userID string) *models.User
	GetRaw(ctx context.Context, userID string) (bson.M, error)
	Create(ctx context.Context, session *models.SessionUser, patch *models.ProfilePatch) (*models.User, error)
	Update(ctx context.Context, userID string, patch *models.ProfilePatch) error
	GetOrCreate(ctx context.Context, session *models.SessionUser) *models.User
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profiles ProfileStore
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ProfileStore, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		logger:   logger,
	}
}

// Get returns the stored profile mapped into the User shape with defaults
// applied. Returns nil when no document exists or the read fails.
func (s *profileServiceImpl) Get(ctx context.Context, userID string) *models.User {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("userId", userID).Msg("failed to fetch profile")
		return nil
	}
	if user == nil {
		return nil
	}
	applyProfileDefaults(user)
	return user
}

// GetRaw returns the stored profile document as-is
func (s *profileServiceImpl) GetRaw(ctx context.Context, userID string) (bson.M, error) {
	return s.profiles.GetRaw(ctx, userID)
}

// Create builds and writes a full profile document at the session user's
// id and returns the shape that was written. Fields the caller did not
// supply are never stored.
func (s *profileServiceImpl) Create(ctx context.Context, session *models.SessionUser, patch *models.ProfilePatch) (*models.User, error) {
	if session == nil || session.ID == "" {
		return nil, fmt.Errorf("create profile: %w", errMissingSession)
	}
	if patch == nil {
		patch = &models.ProfilePatch{}
	}

	user := buildProfile(session, patch)
	if err := s.profiles.Set(ctx, user.ID, profileDoc(user)); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return user, nil
}

// Update merges the supplied fields into the existing profile. If every
// field is absent the call is a no-op and no write is issued.
func (s *profileServiceImpl) Update(ctx context.Context, userID string, patch *models.ProfilePatch) error {
	if patch == nil {
		return nil
	}
	fields := patchFields(patch)
	if len(fields) == 0 {
		return nil
	}
	if err := s.profiles.Merge(ctx, userID, fields); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// GetOrCreate returns the existing profile, creating a minimal one on
// first use. Returns nil on any failure.
func (s *profileServiceImpl) GetOrCreate(ctx context.Context, session *models.SessionUser) *models.User {
	if session == nil || session.ID == "" {
		return nil
	}

	if user := s.Get(ctx, session.ID); user != nil {
		return user
	}

	user, err := s.Create(ctx, session, &models.ProfilePatch{
		Name:  session.DisplayName,
		Email: session.Email,
		Role:  models.RoleStudent,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("userId", session.ID).Msg("failed to create profile on first sign-in")
		return nil
	}
	return user
}

// buildProfile merges a patch over the session identity, applying the
// name and role defaults.
func buildProfile(session *models.SessionUser, patch *models.ProfilePatch) *models.User {
	user := &models.User{
		ID:         session.ID,
		Name:       patch.Name,
		Email:      patch.Email,
		Role:       patch.Role,
		RollNo:     patch.RollNo,
		Year:       patch.Year,
		Branch:     patch.Branch,
		Mobile:     patch.Mobile,
		AdminClubs: patch.AdminClubs,
	}
	if patch.IsGuest != nil {
		user.IsGuest = *patch.IsGuest
	}
	if user.Name == "" {
		user.Name = session.DisplayName
	}
	if user.Email == "" {
		user.Email = session.Email
	}
	applyProfileDefaults(user)
	return user
}

// applyProfileDefaults fills the fields whose absence has a defined
// meaning: every profile reads as at least a student named "User".
func applyProfileDefaults(user *models.User) {
	if user.Name == "" {
		user.Name = models.DefaultName
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}
}

// profileDoc is the stored shape of a full profile. Zero-valued optional
// fields are stripped so the database never holds an explicit empty marker.
func profileDoc(user *models.User) bson.M {
	doc := bson.M{
		"name": user.Name,
		"role": string(user.Role),
	}
	if user.Email != "" {
		doc["email"] = user.Email
	}
	if user.RollNo != "" {
		doc["roll_no"] = user.RollNo
	}
	if user.Year != "" {
		doc["year"] = user.Year
	}
	if user.Branch != "" {
		doc["branch"] = user.Branch
	}
	if user.Mobile != "" {
		doc["mobile"] = user.Mobile
	}
	if user.IsGuest {
		doc["is_guest"] = true
	}
	if len(user.AdminClubs) > 0 {
		doc["admin_clubs"] = user.AdminClubs
	}
	return doc
}

// patchFields converts a partial update into the fields to merge,
// dropping everything the caller left absent.
func patchFields(patch *models.ProfilePatch) bson.M {
	fields := bson.M{}
	if patch.Name != "" {
		fields["name"] = patch.Name
	}
	if patch.Email != "" {
		fields["email"] = patch.Email
	}
	if patch.Role != "" {
		fields["role"] = string(patch.Role)
	}
	if patch.RollNo != "" {
		fields["roll_no"] = patch.RollNo
	}
	if patch.Year != "" {
		fields["year"] = patch.Year
	}
	if patch.Branch != "" {
		fields["branch"] = patch.Branch
	}
	if patch.Mobile != "" {
		fields["mobile"] = patch.Mobile
	}
	if patch.IsGuest != nil {
		fields["is_guest"] = *patch.IsGuest
	}
	if len(patch.AdminClubs) > 0 {
		fields["admin_clubs"] = patch.AdminClubs
	}
	return fields
}
