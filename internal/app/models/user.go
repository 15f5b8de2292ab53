package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleType represents an application role
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleMember  RoleType = "member"
	RoleAdmin   RoleType = "admin"
)

// Defaults applied when a stored profile is missing these fields
const (
	DefaultRole RoleType = RoleStudent
	DefaultName          = "User"
)

// Account is an authentication credential record, distinct from the
// application-level profile keyed by its id.
type Account struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"password_hash,omitempty" json:"-"`
	DisplayName     string             `bson:"display_name,omitempty" json:"displayName,omitempty"`
	Provider        string             `bson:"provider,omitempty" json:"provider,omitempty"`
	ProviderSubject string             `bson:"provider_subject,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// SessionUser is the session identity handed out after authentication.
type SessionUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// User is the application profile stored per account id.
type User struct {
	ID         string   `bson:"_id" json:"id"`
	Name       string   `bson:"name,omitempty" json:"name"`
	Email      string   `bson:"email,omitempty" json:"email"`
	Role       RoleType `bson:"role,omitempty" json:"role"`
	RollNo     string   `bson:"roll_no,omitempty" json:"rollNo,omitempty"`
	Year       string   `bson:"year,omitempty" json:"year,omitempty"`
	Branch     string   `bson:"branch,omitempty" json:"branch,omitempty"`
	Mobile     string   `bson:"mobile,omitempty" json:"mobile,omitempty"`
	IsGuest    bool     `bson:"is_guest,omitempty" json:"isGuest,omitempty"`
	AdminClubs []string `bson:"admin_clubs,omitempty" json:"adminClubs,omitempty"`
}

// ProfilePatch carries optional profile fields for create and update.
// Empty strings mean "not supplied" and are never written to storage.
type ProfilePatch struct {
	Name       string
	Email      string
	Role       RoleType
	RollNo     string
	Year       string
	Branch     string
	Mobile     string
	IsGuest    *bool
	AdminClubs []string
}

// TokenPair is the session token set issued on sign-in.
type TokenPair struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
}

// RefreshToken is a stored refresh token, revoked by deletion.
type RefreshToken struct {
	Token     string    `bson:"_id" json:"-"`
	UserID    string    `bson:"user_id" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
}
