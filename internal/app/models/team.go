package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember identifies one member of an event team
type TeamMember struct {
	UserID string `bson:"user_id" json:"userId"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// Team is a named group of users jointly registered for a team event.
type Team struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   string             `bson:"event_id" json:"eventId"`
	ClubID    string             `bson:"club_id" json:"clubId"`
	Name      string             `bson:"name" json:"name"`
	Members   []TeamMember       `bson:"members" json:"members"`
	CreatedBy string             `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt"`
}

// HasMember reports whether userID already appears in the member list
func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
