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

// CampRepository implements the repositories.CampRepository interface
type CampRepository struct {
	collection *mongo.Collection
}

// NewCampRepository creates a new CampRepository
func NewCampRepository(db *mongo.Database) repositories.CampRepository {
	return &CampRepository{
		collection: db.Collection("camps"),
	}
}

// Create creates a new camp
func (r *CampRepository) Create(ctx context.Context, camp *models.Camp) error {
	camp.CreatedAt = time.Now()
	camp.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, camp)
	if err != nil {
		return translateErr(err, "camp not found", "camp already exists")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		camp.ID = oid
	}
	return nil
}

// FindByID finds a camp by ID
func (r *CampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp models.Camp
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&camp)
	if err != nil {
		return nil, translateErr(err, "camp not found", "")
	}
	return &camp, nil
}

// FindAll finds all camps, newest first
func (r *CampRepository) FindAll(ctx context.Context) ([]*models.Camp, error) {
	opts := options.Find().SetSort(bson.M{"dateTime": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var camps []*models.Camp
	if err := cursor.All(ctx, &camps); err != nil {
		return nil, translateErr(err, "", "")
	}

	if camps == nil {
		camps = []*models.Camp{}
	}

	return camps, nil
}

// UpdateDetails updates the admin-editable fields of a camp. The
// participants counter is never touched here: partial $set only, so a
// concurrent $inc cannot be clobbered by a full-document replace.
func (r *CampRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, update *models.CampUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.DateTime != nil {
		set["dateTime"] = *update.DateTime
	}
	if update.HealthcareProfessional != nil {
		set["healthcareProfessional"] = *update.HealthcareProfessional
	}
	if update.Fees != nil {
		set["fees"] = *update.Fees
	}
	if update.Capacity != nil {
		set["capacity"] = *update.Capacity
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateErr(err, "camp not found", "")
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "camp not found", "")
	}
	return nil
}

// Delete deletes a camp
func (r *CampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateErr(err, "camp not found", "")
	}
	if res.DeletedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "camp not found", "")
	}
	return nil
}

// AdjustParticipants applies an atomic counter adjustment
func (r *CampRepository) AdjustParticipants(ctx context.Context, id primitive.ObjectID, delta int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"participants": delta}},
	)
	if err != nil {
		return translateErr(err, "camp not found", "")
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "camp not found", "")
	}
	return nil
}

// SetParticipants overwrites the participants counter. Reconciliation only.
func (r *CampRepository) SetParticipants(ctx context.Context, id primitive.ObjectID, count int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"participants": count}},
	)
	if err != nil {
		return translateErr(err, "camp not found", "")
	}
	if res.MatchedCount == 0 {
		return translateErr(mongo.ErrNoDocuments, "camp not found", "")
	}
	return nil
}

// Count counts all camps
func (r *CampRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, translateErr(err, "", "")
	}
	return n, nil
}
