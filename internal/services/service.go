package services

import (
	"context"
	"time"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationService owns the registration lifecycle and the participant
// counter invariant: a camp's participants field equals the count of its
// non-cancelled registrations, modulo windows the reconciliation pass closes.
type RegistrationService interface {
	// Register creates a registration for (campID, email). A second call for
	// the same pair returns a conflict, not a failure, and stores nothing.
	Register(ctx context.Context, campID primitive.ObjectID, email string, details models.ParticipantDetails) (*models.Registration, error)

	// Cancel deletes the registration and decrements the camp counter.
	Cancel(ctx context.Context, regID primitive.ObjectID) error

	// Confirm marks the registration confirmed. Idempotent.
	Confirm(ctx context.Context, regID primitive.ObjectID) error

	// GetByID retrieves a registration.
	GetByID(ctx context.Context, regID primitive.ObjectID) (*models.Registration, error)

	// ListForCampAdmin returns the admin roll projection.
	ListForCampAdmin(ctx context.Context) ([]*models.RegistrationSummary, error)

	// ListForParticipant returns the registrations owned by an identity.
	ListForParticipant(ctx context.Context, email string) ([]*models.Registration, error)

	// ReconcileParticipants recomputes every camp's participants counter
	// from a live registration count, corrects drift, and returns the
	// number of camps corrected.
	ReconcileParticipants(ctx context.Context) (int, error)
}

// PaymentService owns the two-phase payment flow: intent creation against
// the external gateway, then confirmation bookkeeping on the registration.
type PaymentService interface {
	// CreateIntent converts the fee to integer minor units and delegates to
	// the gateway. Nothing is persisted at this phase.
	CreateIntent(ctx context.Context, fees float64) (*models.PaymentIntent, error)

	// RecordPayment marks the registration paid and, only on an
	// acknowledged match, appends a payment record.
	RecordPayment(ctx context.Context, regID primitive.ObjectID, payload models.PaymentPayload) (*models.PaymentRecord, error)

	// HistoryFor returns all payment records for an identity in
	// chronological order.
	HistoryFor(ctx context.Context, email string) ([]*models.PaymentRecord, error)
}

// FeedbackService owns feedback submission dedup and the ranking query.
type FeedbackService interface {
	Submit(ctx context.Context, campID primitive.ObjectID, email string, rating int, comment string) (*models.Feedback, error)

	// TopRanked returns the n camps with the most feedback, count
	// descending, camp id ascending on ties. Camps without feedback never
	// appear.
	TopRanked(ctx context.Context, n int) ([]models.RankedCamp, error)

	AllFeedback(ctx context.Context) ([]*models.Feedback, error)
}

// CampService owns plain camp CRUD for administrators. It never touches
// the participants counter.
type CampService interface {
	CreateCamp(ctx context.Context, camp *models.Camp) error
	GetCamp(ctx context.Context, id primitive.ObjectID) (*models.Camp, error)
	ListCamps(ctx context.Context) ([]*models.Camp, error)
	UpdateCamp(ctx context.Context, id primitive.ObjectID, update *models.CampUpdate) error
	DeleteCamp(ctx context.Context, id primitive.ObjectID) error
}

// AuthService establishes identities and roles
type AuthService interface {
	// Login finds or creates a participant user and issues a session token.
	Login(ctx context.Context, email string) (*models.LoginResponse, error)

	// AdminLogin verifies an admin password and issues a session token.
	AdminLogin(ctx context.Context, email, password string) (*models.LoginResponse, error)

	// IsAdmin reports whether the identity holds the admin role.
	IsAdmin(ctx context.Context, email string) (bool, error)

	ListUsers(ctx context.Context) ([]*models.User, error)
	RemoveUser(ctx context.Context, id primitive.ObjectID) error
}

// readRetryBackoff is the pause before the single retry of an idempotent
// read that hit an unavailable store. Mutations are never auto-retried.
const readRetryBackoff = 100 * time.Millisecond

// retryRead runs an idempotent read, retrying once after a short backoff
// when the store is unavailable.
func retryRead(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || apperrors.KindOf(err) != apperrors.KindStoreUnavailable {
		return err
	}
	select {
	case <-time.After(readRetryBackoff):
	case <-ctx.Done():
		return err
	}
	return fn()
}
