package dto

import "github.com/adisharma/clubhub/internal/app/models"

// RegistrantInfo identifies the registering user
type RegistrantInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// User converts the registrant into the model shape
func (r *RegistrantInfo) User() *models.User {
	return &models.User{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Mobile: r.Mobile,
	}
}

// EventInfoRequest is the event metadata denormalized onto a registration
type EventInfoRequest struct {
	Name            string  `json:"name"`
	Date            string  `json:"date"`
	Location        string  `json:"location"`
	RegistrationFee float64 `json:"registrationFee"`
}

// Info converts the request into the model shape
func (r *EventInfoRequest) Info() models.EventInfo {
	return models.EventInfo{
		Name:            r.Name,
		Date:            r.Date,
		Location:        r.Location,
		RegistrationFee: r.RegistrationFee,
	}
}

// RegisterEventRequest creates a registration. PaymentID is required on
// the paid path, TeamID on the team path.
type RegisterEventRequest struct {
	User      RegistrantInfo   `json:"user" binding:"required"`
	Event     EventInfoRequest `json:"event"`
	PaymentID string           `json:"paymentId"`
	TeamID    string           `json:"teamId"`
	Note      string           `json:"note"`
}

// RegistrationIDResponse returns the id of a newly written registration
type RegistrationIDResponse struct {
	ID string `json:"id"`
}

// UpdateStatusRequest sets a registration's lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentRequest sets a registration's payment state
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
	PaymentID     string `json:"paymentId"`
}

// StorePaymentRequest records a successful payment
type StorePaymentRequest struct {
	PaymentID      string  `json:"paymentId" binding:"required"`
	RegistrationID string  `json:"registrationId"`
	Amount         float64 `json:"amount"`
	UserID         string  `json:"userId"`
	UserEmail      string  `json:"userEmail"`
}
