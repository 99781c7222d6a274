package mongodb

import (
	"context"
	"time"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository implements the repositories.PaymentRepository interface
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) repositories.PaymentRepository {
	return &PaymentRepository{
		collection: db.Collection("payments"),
	}
}

// Create appends a payment record
func (r *PaymentRepository) Create(ctx context.Context, record *models.PaymentRecord) error {
	record.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return translateErr(err, "", "")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

// FindByEmail finds all payment records for an identity in insertion order.
// ObjectIDs are monotonic per process, which is the chronological contract
// the history view needs.
func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var records []*models.PaymentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, translateErr(err, "", "")
	}

	if records == nil {
		records = []*models.PaymentRecord{}
	}

	return records, nil
}
