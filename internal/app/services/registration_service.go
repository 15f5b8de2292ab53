package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

// RegistrationStore is the registration persistence boundary
type RegistrationStore interface {
	Insert(ctx context.Context, reg *models.Registration) (string, error)
	CountActive(ctx context.Context, clubID, eventID, userID string) (int64, error)
	FindByUser(ctx context.Context, clubID, eventID, userID string) ([]models.Registration, error)
	FindByEvent(ctx context.Context, clubID, eventID string) ([]models.Registration, error)
	FindByID(ctx context.Context, clubID, eventID, id string) (*models.Registration, error)
	UpdateStatus(ctx context.Context, clubID, eventID, id string, status models.RegistrationStatus) error
	CheckIn(ctx context.Context, clubID, eventID, id string) error
	UpdatePayment(ctx context.Context, clubID, eventID, id string, status models.PaymentStatus, paymentID string) error
	DeleteByID(ctx context.Context, clubID, eventID, id string) error
}

// PaymentStore is the payment record persistence boundary
type PaymentStore interface {
	Store(ctx context.Context, rec *models.PaymentRecord) error
	FindByID(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
}

// RegistrationService manages event registrations, check-in, and payment
// state for one club's events.
type RegistrationService interface {
	Register(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, note string) (string, error)
	RegisterPaid(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, paymentID, note string) (string, error)
	RegisterTeam(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, teamID, note string) (string, error)
	IsRegistered(ctx context.Context, clubID, eventID, userID string) bool
	UserRegistrations(ctx context.Context, clubID, eventID, userID string) []models.Registration
	EventRegistrations(ctx context.Context, clubID, eventID string) ([]models.Registration, error)
	Stats(ctx context.Context, clubID, eventID string) (*models.RegistrationStats, error)
	Count(ctx context.Context, clubID, eventID string) (int, error)
	UpdateStatus(ctx context.Context, clubID, eventID, registrationID string, status models.RegistrationStatus) error
	Cancel(ctx context.Context, clubID, eventID, registrationID string) error
	CheckIn(ctx context.Context, clubID, eventID, registrationID string) error
	UpdatePayment(ctx context.Context, clubID, eventID, registrationID string, status models.PaymentStatus, paymentID string) error
	Get(ctx context.Context, clubID, eventID, registrationID string) *models.Registration
	Delete(ctx context.Context, clubID, eventID, registrationID string) error
	StorePayment(ctx context.Context, rec *models.PaymentRecord) error
	Payment(ctx context.Context, paymentID string) (*models.PaymentRecord, error)
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	registrations RegistrationStore
	payments      PaymentStore
	logger        zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(registrations RegistrationStore, payments PaymentStore, logger zerolog.Logger) RegistrationService {
	return &registrationServiceImpl{
		registrations: registrations,
		payments:      payments,
		logger:        logger,
	}
}

// Register creates a registration for a free event. Events declaring a
// positive registration fee are rejected before anything is written.
func (s *registrationServiceImpl) Register(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, note string) (string, error) {
	if info.RegistrationFee > 0 {
		return "", apperrors.New(apperrors.ErrPaidEventFreePath, "paid events must use the paid registration path")
	}
	return s.insert(ctx, newRegistration(clubID, eventID, user, info, note))
}

// RegisterPaid creates a registration for a paid event. The written user
// id is taken from the active session identity, not from the caller's
// user object, so a spoofed id cannot register someone else.
func (s *registrationServiceImpl) RegisterPaid(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, paymentID, note string) (string, error) {
	if user == nil || user.ID == "" {
		return "", apperrors.NewValidationError("user id is required for paid registration")
	}
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return "", apperrors.New(apperrors.ErrNoActiveSession, "paid registration requires an active session")
	}

	reg := newRegistration(clubID, eventID, user, info, note)
	reg.UserID = session.ID
	reg.PaymentStatus = models.PaymentPaid
	reg.PaymentID = paymentID
	return s.insert(ctx, reg)
}

// RegisterTeam creates a registration for a team event, linking it to
// the supplied team.
func (s *registrationServiceImpl) RegisterTeam(ctx context.Context, clubID, eventID string, user *models.User, info models.EventInfo, teamID, note string) (string, error) {
	reg := newRegistration(clubID, eventID, user, info, note)
	reg.TeamID = teamID
	return s.insert(ctx, reg)
}

func (s *registrationServiceImpl) insert(ctx context.Context, reg *models.Registration) (string, error) {
	id, err := s.registrations.Insert(ctx, reg)
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}
	return id, nil
}

// IsRegistered reports whether the user holds a non-cancelled
// registration for the event. Missing keys and query failures both read
// as not registered.
func (s *registrationServiceImpl) IsRegistered(ctx context.Context, clubID, eventID, userID string) bool {
	if clubID == "" || eventID == "" || userID == "" {
		return false
	}
	count, err := s.registrations.CountActive(ctx, clubID, eventID, userID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("clubId", clubID).Str("eventId", eventID).Str("userId", userID).
			Msg("failed to check registration")
		return false
	}
	return count > 0
}

// UserRegistrations returns the user's registrations for the event,
// newest first. Missing parameters and query failures both yield an
// empty result.
func (s *registrationServiceImpl) UserRegistrations(ctx context.Context, clubID, eventID, userID string) []models.Registration {
	if clubID == "" || eventID == "" || userID == "" {
		return nil
	}
	regs, err := s.registrations.FindByUser(ctx, clubID, eventID, userID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("clubId", clubID).Str("eventId", eventID).Str("userId", userID).
			Msg("failed to fetch user registrations")
		return nil
	}
	return regs
}

// EventRegistrations returns all registrations for the event, as stored
func (s *registrationServiceImpl) EventRegistrations(ctx context.Context, clubID, eventID string) ([]models.Registration, error) {
	return s.registrations.FindByEvent(ctx, clubID, eventID)
}

// Stats derives registration counts from the event's full registration
// set; it issues no query beyond the fetch itself.
func (s *registrationServiceImpl) Stats(ctx context.Context, clubID, eventID string) (*models.RegistrationStats, error) {
	regs, err := s.registrations.FindByEvent(ctx, clubID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations for stats: %w", err)
	}
	return aggregateStats(regs), nil
}

// Count returns the total number of registrations for the event
func (s *registrationServiceImpl) Count(ctx context.Context, clubID, eventID string) (int, error) {
	stats, err := s.Stats(ctx, clubID, eventID)
	if err != nil {
		return 0, err
	}
	return stats.Total, nil
}

// UpdateStatus sets a registration's lifecycle status. Any status may
// transition to any other.
func (s *registrationServiceImpl) UpdateStatus(ctx context.Context, clubID, eventID, registrationID string, status models.RegistrationStatus) error {
	return s.registrations.UpdateStatus(ctx, clubID, eventID, registrationID, status)
}

// Cancel marks a registration cancelled
func (s *registrationServiceImpl) Cancel(ctx context.Context, clubID, eventID, registrationID string) error {
	return s.UpdateStatus(ctx, clubID, eventID, registrationID, models.RegistrationCancelled)
}

// CheckIn marks a registration checked in. A repeat call re-stamps the
// check-in time.
func (s *registrationServiceImpl) CheckIn(ctx context.Context, clubID, eventID, registrationID string) error {
	return s.registrations.CheckIn(ctx, clubID, eventID, registrationID)
}

// UpdatePayment sets payment status and payment id. A paid status also
// confirms the registration in the same update.
func (s *registrationServiceImpl) UpdatePayment(ctx context.Context, clubID, eventID, registrationID string, status models.PaymentStatus, paymentID string) error {
	return s.registrations.UpdatePayment(ctx, clubID, eventID, registrationID, status, paymentID)
}

// Get returns one registration by id, or nil when it does not exist or
// the read fails.
func (s *registrationServiceImpl) Get(ctx context.Context, clubID, eventID, registrationID string) *models.Registration {
	reg, err := s.registrations.FindByID(ctx, clubID, eventID, registrationID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("clubId", clubID).Str("eventId", eventID).Str("registrationId", registrationID).
			Msg("failed to fetch registration")
		return nil
	}
	return reg
}

// Delete removes a registration. Authorization is enforced by the
// database access rules, not here.
func (s *registrationServiceImpl) Delete(ctx context.Context, clubID, eventID, registrationID string) error {
	return s.registrations.DeleteByID(ctx, clubID, eventID, registrationID)
}

// StorePayment records a successful payment. A record missing its
// registration, event, or club linkage is silently dropped.
func (s *registrationServiceImpl) StorePayment(ctx context.Context, rec *models.PaymentRecord) error {
	if rec == nil || rec.RegistrationID == "" || rec.EventID == "" || rec.ClubID == "" {
		return nil
	}
	return s.payments.Store(ctx, rec)
}

// Payment returns one stored payment record, or nil when none exists
func (s *registrationServiceImpl) Payment(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	if paymentID == "" {
		return nil, apperrors.NewValidationError("payment id is required")
	}
	rec, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment record: %w", err)
	}
	return rec, nil
}

// newRegistration builds the confirmed, not-checked-in registration shape
// shared by all registration paths, with the event metadata denormalized
// onto it.
func newRegistration(clubID, eventID string, user *models.User, info models.EventInfo, note string) *models.Registration {
	reg := &models.Registration{
		EventID:       eventID,
		ClubID:        clubID,
		Status:        models.RegistrationConfirmed,
		CheckInStatus: models.NotCheckedIn,
		Event:         info,
		Note:          note,
	}
	if user != nil {
		reg.UserID = user.ID
		reg.UserName = user.Name
		reg.UserEmail = user.Email
		reg.UserPhone = user.Mobile
	}
	return reg
}

// aggregateStats filters the registration set into counts
func aggregateStats(regs []models.Registration) *models.RegistrationStats {
	stats := &models.RegistrationStats{Total: len(regs)}
	for _, reg := range regs {
		switch reg.Status {
		case models.RegistrationConfirmed:
			stats.Confirmed++
		case models.RegistrationPending:
			stats.Pending++
		case models.RegistrationCancelled:
			stats.Cancelled++
		}
		if reg.CheckInStatus == models.CheckedIn {
			stats.CheckedIn++
		}
	}
	return stats
}
