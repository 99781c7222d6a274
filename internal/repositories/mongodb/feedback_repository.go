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

// FeedbackRepository implements the repositories.FeedbackRepository interface
type FeedbackRepository struct {
	collection *mongo.Collection
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *mongo.Database) repositories.FeedbackRepository {
	return &FeedbackRepository{
		collection: db.Collection("feedback"),
	}
}

// EnsureIndexes creates the unique compound index on (campId, email). The
// application-level pre-check is only a fast path; this index is the guard.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "campId", Value: 1},
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("feedback_camp_email_unique"),
	})
	if err != nil {
		return translateErr(err, "", "")
	}
	return nil
}

// Create creates new feedback. Duplicate (campId, email) pairs surface as
// a conflict.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	feedback.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return translateErr(err, "feedback not found", "feedback already submitted for this camp")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid
	}
	return nil
}

// FindByCampAndEmail finds the feedback for a (camp, participant) pair
func (r *FeedbackRepository) FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"campId": campID, "email": email}).Decode(&feedback)
	if err != nil {
		return nil, translateErr(err, "feedback not found", "")
	}
	return &feedback, nil
}

// FindAll finds all feedback, newest first, for public display
func (r *FeedbackRepository) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var feedback []*models.Feedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, translateErr(err, "", "")
	}

	if feedback == nil {
		feedback = []*models.Feedback{}
	}

	return feedback, nil
}

// TopCounts groups feedback by camp and returns the n largest groups.
// Ties on count break by camp id ascending so the ranking is deterministic.
func (r *FeedbackRepository) TopCounts(ctx context.Context, n int) ([]models.CampFeedbackCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$campId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: n}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translateErr(err, "", "")
	}
	defer cursor.Close(ctx)

	var counts []models.CampFeedbackCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, translateErr(err, "", "")
	}

	if counts == nil {
		counts = []models.CampFeedbackCount{}
	}

	return counts, nil
}
