package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback represents a participant's rating of a camp. At most one per
// (campId, email); append-only once created.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampID    primitive.ObjectID `bson:"campId" json:"campId"`
	Email     string             `bson:"email" json:"email"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CampName  string             `bson:"campName" json:"campName"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CampFeedbackCount is one group of the feedback-per-camp aggregation
type CampFeedbackCount struct {
	CampID primitive.ObjectID `bson:"_id" json:"campId"`
	Count  int                `bson:"count" json:"count"`
}
