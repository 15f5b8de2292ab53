package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationStatus is the lifecycle state of an event registration
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// PaymentStatus is the payment state of a registration
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// CheckInStatus marks physical presence at an event
type CheckInStatus string

const (
	NotCheckedIn CheckInStatus = "not_checked_in"
	CheckedIn    CheckInStatus = "checked_in"
)

// EventInfo is event metadata denormalized onto a registration at
// registration time.
type EventInfo struct {
	Name            string  `bson:"name,omitempty" json:"name,omitempty"`
	Date            string  `bson:"date,omitempty" json:"date,omitempty"`
	Location        string  `bson:"location,omitempty" json:"location,omitempty"`
	RegistrationFee float64 `bson:"registration_fee,omitempty" json:"registrationFee,omitempty"`
}

// Registration links one user to one event under one club.
type Registration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID       string             `bson:"event_id" json:"eventId"`
	ClubID        string             `bson:"club_id" json:"clubId"`
	UserID        string             `bson:"user_id" json:"userId"`
	UserName      string             `bson:"user_name,omitempty" json:"userName,omitempty"`
	UserEmail     string             `bson:"user_email,omitempty" json:"userEmail,omitempty"`
	UserPhone     string             `bson:"user_phone,omitempty" json:"userPhone,omitempty"`
	Status        RegistrationStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	PaymentID     string             `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CheckInStatus CheckInStatus      `bson:"check_in_status" json:"checkInStatus"`
	CheckedInAt   *time.Time         `bson:"checked_in_at,omitempty" json:"checkedInAt,omitempty"`
	Event         EventInfo          `bson:"event,omitempty" json:"event,omitempty"`
	TeamID        string             `bson:"team_id,omitempty" json:"teamId,omitempty"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"createdAt"`
}

// RegistrationStats are counts derived from an event's registration set.
type RegistrationStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
	CheckedIn int `json:"checkedIn"`
}

// PaymentRecord is an append-only record of a successful payment,
// keyed by its payment id.
type PaymentRecord struct {
	PaymentID      string        `bson:"_id" json:"paymentId"`
	RegistrationID string        `bson:"registration_id" json:"registrationId"`
	EventID        string        `bson:"event_id" json:"eventId"`
	ClubID         string        `bson:"club_id" json:"clubId"`
	Amount         float64       `bson:"amount" json:"amount"`
	UserID         string        `bson:"user_id,omitempty" json:"userId,omitempty"`
	UserEmail      string        `bson:"user_email,omitempty" json:"userEmail,omitempty"`
	PaymentStatus  PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	CreatedAt      time.Time     `bson:"created_at,omitempty" json:"createdAt"`
}
