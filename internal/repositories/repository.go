package repositories

import (
	"context"

	"github.com/camp-aid/campaid-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Implementations translate store-level failures into apperrors kinds at
// this boundary: absent documents become KindNotFound, unique-index
// violations become KindConflict, timeouts and connection failures become
// KindStoreUnavailable. Services never see driver errors.

// CampRepository defines the interface for camp data operations
type CampRepository interface {
	Create(ctx context.Context, camp *models.Camp) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error)
	FindAll(ctx context.Context) ([]*models.Camp, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, update *models.CampUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AdjustParticipants applies an atomic $inc to the participants counter.
	// Never implemented as read-modify-write.
	AdjustParticipants(ctx context.Context, id primitive.ObjectID, delta int) error
	// SetParticipants overwrites the counter; reconciliation only.
	SetParticipants(ctx context.Context, id primitive.ObjectID, count int) error
	Count(ctx context.Context) (int64, error)
}

// RegistrationRepository defines the interface for registration data operations
type RegistrationRepository interface {
	// Create inserts a registration. A unique-index violation on
	// (campId, email) is returned as a KindConflict error.
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error)
	FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Registration, error)
	FindByEmail(ctx context.Context, email string) ([]*models.Registration, error)
	FindAllSummaries(ctx context.Context) ([]*models.RegistrationSummary, error)
	// SetPaymentStatus conditionally marks the registration paid and reports
	// whether a document matched. No match means the caller must not write a
	// payment record.
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID) (bool, error)
	SetConfirmationStatus(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCamp(ctx context.Context, campID primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// PaymentRepository defines the interface for payment record operations.
// Records are append-only.
type PaymentRepository interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	FindByEmail(ctx context.Context, email string) ([]*models.PaymentRecord, error)
}

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	// Create inserts feedback. A unique-index violation on (campId, email)
	// is returned as a KindConflict error.
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Feedback, error)
	FindAll(ctx context.Context) ([]*models.Feedback, error)
	// TopCounts groups feedback by camp, ordered by count descending with
	// camp id ascending as the tie-break, limited to n groups.
	TopCounts(ctx context.Context, n int) ([]models.CampFeedbackCount, error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a user. A unique-index violation on email is returned
	// as a KindConflict error.
	Create(ctx context.Context, user *models.User) error
	EnsureIndexes(ctx context.Context) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
