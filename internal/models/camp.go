package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camp represents a medical camp participants can register for
type Camp struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                   string             `bson:"name" json:"name"`
	Description            string             `bson:"description" json:"description"`
	Location               string             `bson:"location" json:"location"`
	DateTime               time.Time          `bson:"dateTime" json:"dateTime"`
	HealthcareProfessional string             `bson:"healthcareProfessional" json:"healthcareProfessional"`
	Fees                   float64            `bson:"fees" json:"fees"`
	Capacity               int                `bson:"capacity,omitempty" json:"capacity,omitempty"`
	// Participants counts non-cancelled registrations for this camp.
	// Adjusted only through atomic $inc updates and the reconciliation pass.
	Participants int       `bson:"participants" json:"participants"`
	CreatedBy    string    `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CampUpdate holds the admin-editable fields of a camp. Participants is
// deliberately absent: the counter belongs to the registration workflow.
type CampUpdate struct {
	Name                   *string    `json:"name,omitempty"`
	Description            *string    `json:"description,omitempty"`
	Location               *string    `json:"location,omitempty"`
	DateTime               *time.Time `json:"dateTime,omitempty"`
	HealthcareProfessional *string    `json:"healthcareProfessional,omitempty"`
	Fees                   *float64   `json:"fees,omitempty"`
	Capacity               *int       `json:"capacity,omitempty"`
}

// RankedCamp pairs a camp with its feedback count for the top-N listing
type RankedCamp struct {
	Camp          Camp `json:"camp"`
	FeedbackCount int  `json:"feedbackCount"`
}
