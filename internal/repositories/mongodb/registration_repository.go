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

// RegistrationRepository implements the repositories.RegistrationRepository interface
type RegistrationRepository struct {
	collection *mongo.Collection
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *mongo.Database) repositories.RegistrationRepository {
	return &RegistrationRepository{
		collection: db.Collection("registrations"),
	}
}

// EnsureIndexes creates the unique compound index on (campId, email).
// The index is the authoritative duplicate guard: two concurrent Register
// calls can both pass the application-level existence check, but only one
// insert can win here.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "campId", Value: 1},
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("registrations_camp_email_unique"),
	})
	if err != nil {
		return translateErr(err, "", "")
	}
	return nil
}

// Create creates a new registration. Duplicate (campId, email) pairs
// surface as a conflict.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	reg.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, reg)
	if err != nil {
		return translateErr(err, "registration not found", "already registered for this camp")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reg.ID = oid
	}
	return nil
}

// FindByID finds a registration by ID
func (r *RegistrationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var reg models.Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err != nil {
		return nil, translateErr(err, "registration not found", "")
	}
	return &reg, nil
}

// FindByCampAndEmail finds the registration for a (camp, participant) pair
func (r *RegistrationRepository) FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Registration, error) {
	var reg models.Registration
	err := r.collection.FindOne(ctx, bson.M{"campId": campID, "email": email}).Decode(&reg)
	if err != nil {
		return nil, translateErr(err, "registration not found", "")
	}
	return &reg, nil
}

// FindByEmail finds all registrations for a participant
func (r *RegistrationRepository) FindByEmail(ctx context.Context, email string) ([]*models.Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var regs []*models.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, translateErr(err, "", "")
	}

	if regs == nil {
		regs = []*models.Registration{}
	}

	return regs, nil
}

// FindAllSummaries returns the admin roll projection. The participant's
// detail payload is excluded at the query level, not post-filtered.
func (r *RegistrationRepository) FindAllSummaries(ctx context.Context) ([]*models.RegistrationSummary, error) {
	opts := options.Find().SetProjection(bson.M{
		"_id":                 1,
		"campId":              1,
		"email":               1,
		"campName":            1,
		"campFees":            1,
		"participantName":     "$participant.name",
		"payment_status":      1,
		"confirmation_status": 1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var summaries []*models.RegistrationSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, translateErr(err, "", "")
	}

	if summaries == nil {
		summaries = []*models.RegistrationSummary{}
	}

	return summaries, nil
}

// SetPaymentStatus conditionally marks the registration paid. The boolean
// reports whether a document matched; callers must not append a payment
// record when it is false.
func (r *RegistrationRepository) SetPaymentStatus(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment_status": true}},
	)
	if err != nil {
		return false, translateErr(err, "registration not found", "")
	}
	return res.MatchedCount > 0, nil
}

// SetConfirmationStatus marks the registration confirmed. Idempotent.
func (r *RegistrationRepository) SetConfirmationStatus(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"confirmation_status": true}},
	)
	if err != nil {
		return translateErr(err, "registration not found", "")
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "registration not found", "")
	}
	return nil
}

// Delete deletes a registration
func (r *RegistrationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateErr(err, "registration not found", "")
	}
	if res.DeletedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "registration not found", "")
	}
	return nil
}

// CountByCamp counts non-cancelled registrations for a camp. Used by the
// reconciliation pass as the source of truth for the participants counter.
func (r *RegistrationRepository) CountByCamp(ctx context.Context, campID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"campId": campID})
	if err != nil {
		return 0, translateErr(err, "", "")
	}
	return n, nil
}
