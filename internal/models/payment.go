package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord represents a confirmed payment against a registration.
// Append-only: never mutated or deleted by the workflow.
type PaymentRecord struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampID primitive.ObjectID `bson:"campId" json:"campId"`
	Email  string             `bson:"email" json:"email"`
	Amount float64            `bson:"amount" json:"amount"`
	// AmountMinor is the gateway's integer minor-unit amount (e.g. cents).
	AmountMinor int64     `bson:"amountMinor" json:"amountMinor"`
	GatewayRef  string    `bson:"gatewayRef" json:"gatewayRef"`
	CampName    string    `bson:"campName" json:"campName"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentIntent is the opaque client-usable handle returned by the gateway
// when an intent is created. Nothing is persisted at this phase.
type PaymentIntent struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	AmountMinor  int64  `json:"amountMinor"`
	Currency     string `json:"currency"`
}

// PaymentPayload is the confirmation payload the client sends after the
// gateway captures the payment.
type PaymentPayload struct {
	Amount     float64 `json:"amount"`
	GatewayRef string  `json:"gatewayRef" binding:"required"`
}
