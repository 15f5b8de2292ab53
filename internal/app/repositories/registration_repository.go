package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
)

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	col *mongo.Collection
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(registrationsCollection)}
}

// Insert writes a new registration document and returns its id.
// created_at is assigned by the database, not the client.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) (string, error) {
	id := primitive.NewObjectID()
	update := bson.M{
		"$setOnInsert": registrationInsertDoc(reg),
		"$currentDate": bson.M{"created_at": true},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update, opts); err != nil {
		return "", fmt.Errorf("insert registration: %w", err)
	}
	return id.Hex(), nil
}

// CountActive counts the user's registrations for the event whose status
// is not cancelled.
func (r *RegistrationRepository) CountActive(ctx context.Context, clubID, eventID, userID string) (int64, error) {
	filter := eventScope(clubID, eventID)
	filter["user_id"] = userID
	filter["status"] = bson.M{"$ne": string(models.RegistrationCancelled)}

	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count active registrations: %w", err)
	}
	return count, nil
}

// FindByUser returns the user's registrations for the event, newest first
func (r *RegistrationRepository) FindByUser(ctx context.Context, clubID, eventID, userID string) ([]models.Registration, error) {
	filter := eventScope(clubID, eventID)
	filter["user_id"] = userID

	cur, err := r.col.Find(ctx, filter, newestFirstOpts())
	if err != nil {
		return nil, fmt.Errorf("find registrations by user: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRegistrations(ctx, cur)
}

// FindByEvent returns all registrations for the event, as stored
func (r *RegistrationRepository) FindByEvent(ctx context.Context, clubID, eventID string) ([]models.Registration, error) {
	cur, err := r.col.Find(ctx, eventScope(clubID, eventID))
	if err != nil {
		return nil, fmt.Errorf("find registrations by event: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRegistrations(ctx, cur)
}

// FindByID returns one registration by id, or nil if it does not exist
func (r *RegistrationRepository) FindByID(ctx context.Context, clubID, eventID, id string) (*models.Registration, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid registration id %q: %w", id, err)
	}

	filter := eventScope(clubID, eventID)
	filter["_id"] = oid

	var reg models.Registration
	if err := r.col.FindOne(ctx, filter).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return &reg, nil
}

// UpdateStatus sets the lifecycle status of one registration
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, clubID, eventID, id string, status models.RegistrationStatus) error {
	return r.updateByID(ctx, clubID, eventID, id, statusUpdateDoc(status))
}

// CheckIn marks one registration checked in with a database-assigned time
func (r *RegistrationRepository) CheckIn(ctx context.Context, clubID, eventID, id string) error {
	return r.updateByID(ctx, clubID, eventID, id, checkInUpdateDoc())
}

// UpdatePayment sets the payment status and payment id of one registration
func (r *RegistrationRepository) UpdatePayment(ctx context.Context, clubID, eventID, id string, status models.PaymentStatus, paymentID string) error {
	return r.updateByID(ctx, clubID, eventID, id, paymentUpdateDoc(status, paymentID))
}

func (r *RegistrationRepository) updateByID(ctx context.Context, clubID, eventID, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid registration id %q: %w", id, err)
	}

	filter := eventScope(clubID, eventID)
	filter["_id"] = oid

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrRegistrationNotFound, "registration not found")
	}
	return nil
}

// DeleteByID removes one registration
func (r *RegistrationRepository) DeleteByID(ctx context.Context, clubID, eventID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid registration id %q: %w", id, err)
	}

	filter := eventScope(clubID, eventID)
	filter["_id"] = oid

	if _, err := r.col.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func decodeRegistrations(ctx context.Context, cur *mongo.Cursor) ([]models.Registration, error) {
	var result []models.Registration
	for cur.Next(ctx) {
		var reg models.Registration
		if err := cur.Decode(&reg); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		result = append(result, reg)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("registrations cursor: %w", err)
	}
	return result, nil
}

// registrationInsertDoc builds the stored shape of a new registration.
// Optional fields are left out entirely rather than stored as empty values.
func registrationInsertDoc(reg *models.Registration) bson.M {
	doc := bson.M{
		"event_id":        reg.EventID,
		"club_id":         reg.ClubID,
		"user_id":         reg.UserID,
		"status":          string(reg.Status),
		"check_in_status": string(models.NotCheckedIn),
	}
	if reg.UserName != "" {
		doc["user_name"] = reg.UserName
	}
	if reg.UserEmail != "" {
		doc["user_email"] = reg.UserEmail
	}
	if reg.UserPhone != "" {
		doc["user_phone"] = reg.UserPhone
	}
	if reg.PaymentStatus != "" {
		doc["payment_status"] = string(reg.PaymentStatus)
	}
	if reg.PaymentID != "" {
		doc["payment_id"] = reg.PaymentID
	}
	if reg.TeamID != "" {
		doc["team_id"] = reg.TeamID
	}
	if reg.Note != "" {
		doc["note"] = reg.Note
	}
	if reg.Event != (models.EventInfo{}) {
		doc["event"] = bson.M{
			"name":             reg.Event.Name,
			"date":             reg.Event.Date,
			"location":         reg.Event.Location,
			"registration_fee": reg.Event.RegistrationFee,
		}
	}
	return doc
}

// newestFirstOpts sorts results descending by creation time
func newestFirstOpts() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// statusUpdateDoc sets the lifecycle status. Any transition is legal.
func statusUpdateDoc(status models.RegistrationStatus) bson.M {
	return bson.M{
		"$set": bson.M{"status": string(status)},
	}
}

// checkInUpdateDoc marks the registration checked in, stamping the
// check-in time on the database side. Repeat calls re-stamp the time.
func checkInUpdateDoc() bson.M {
	return bson.M{
		"$set":         bson.M{"check_in_status": string(models.CheckedIn)},
		"$currentDate": bson.M{"checked_in_at": true},
	}
}

// paymentUpdateDoc sets the payment fields. A paid status also confirms
// the registration in the same atomic update, so a confirmed paid
// registration can never be observed half-written.
func paymentUpdateDoc(status models.PaymentStatus, paymentID string) bson.M {
	set := bson.M{
		"payment_status": string(status),
		"payment_id":     paymentID,
	}
	if status == models.PaymentPaid {
		set["status"] = string(models.RegistrationConfirmed)
	}
	return bson.M{"$set": set}
}
