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

// PaymentRepository handles database operations for event payment records
type PaymentRepository struct {
	col *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(paymentsCollection)}
}

// Store writes an immutable payment record keyed by its payment id.
// A second store with the same payment id is a no-op, so the original
// record and its timestamp are never touched.
func (r *PaymentRepository) Store(ctx context.Context, rec *models.PaymentRecord) error {
	rec.PaymentStatus = models.PaymentPaid
	rec.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("store payment record: %w", err)
	}
	return nil
}

// FindByID returns one payment record, or nil if it does not exist
func (r *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	err := r.col.FindOne(ctx, bson.M{"_id": paymentID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment record: %w", err)
	}
	return &rec, nil
}
