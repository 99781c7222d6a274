package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantDetails is the registration detail payload supplied by the
// participant. The workflow treats it as opaque beyond presence checks.
type ParticipantDetails struct {
	Name             string `bson:"name" json:"name"`
	Age              int    `bson:"age" json:"age"`
	Phone            string `bson:"phone" json:"phone"`
	Gender           string `bson:"gender" json:"gender"`
	EmergencyContact string `bson:"emergencyContact" json:"emergencyContact"`
}

// Registration represents a participant's registration for a camp.
// At most one non-cancelled registration exists per (campId, email);
// the unique index on those fields is the authoritative guard.
type Registration struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampID primitive.ObjectID `bson:"campId" json:"campId"`
	Email  string             `bson:"email" json:"email"`
	// CampName and CampFees are snapshots taken at registration time so the
	// admin roll survives later camp edits.
	CampName           string             `bson:"campName" json:"campName"`
	CampFees           float64            `bson:"campFees" json:"campFees"`
	Participant        ParticipantDetails `bson:"participant" json:"participant"`
	PaymentStatus      bool               `bson:"payment_status" json:"payment_status"`
	ConfirmationStatus bool               `bson:"confirmation_status" json:"confirmation_status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// RegistrationSummary is the admin roll projection: enough to manage the
// roll without exposing the participant's full detail payload.
type RegistrationSummary struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	CampID             primitive.ObjectID `bson:"campId" json:"campId"`
	Email              string             `bson:"email" json:"email"`
	CampName           string             `bson:"campName" json:"campName"`
	CampFees           float64            `bson:"campFees" json:"campFees"`
	ParticipantName    string             `bson:"participantName" json:"participantName"`
	PaymentStatus      bool               `bson:"payment_status" json:"payment_status"`
	ConfirmationStatus bool               `bson:"confirmation_status" json:"confirmation_status"`
}
