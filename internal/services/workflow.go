package services

import (
	"context"
	"strings"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is the authenticated identity attached to a request by the auth
// boundary. The workflow trusts the email as-is and evaluates capability
// checks against it before delegating.
type Actor struct {
	Email string
	Role  string
}

// CanAdminister reports whether the actor may manage camps and rolls
func (a Actor) CanAdminister() bool {
	return a.Role == models.RoleAdmin
}

// owns reports whether the actor owns a resource keyed by email
func (a Actor) owns(email string) bool {
	return a.Email != "" && a.Email == email
}

// Workflow is the facade the HTTP boundary calls. It composes the
// registration, payment and feedback services and performs every
// authorization check, so no service method needs request identity and no
// middleware chain carries authorization side effects.
type Workflow struct {
	registrations RegistrationService
	payments      PaymentService
	feedback      FeedbackService
	camps         CampService
}

// NewWorkflow creates a new Workflow facade
func NewWorkflow(registrations RegistrationService, payments PaymentService, feedback FeedbackService, camps CampService) *Workflow {
	return &Workflow{
		registrations: registrations,
		payments:      payments,
		feedback:      feedback,
		camps:         camps,
	}
}

// RegisterForCamp registers the acting participant for a camp
func (w *Workflow) RegisterForCamp(ctx context.Context, actor Actor, campID primitive.ObjectID, details models.ParticipantDetails) (*models.Registration, error) {
	return w.registrations.Register(ctx, campID, actor.Email, details)
}

// CancelRegistration cancels a registration owned by the actor, or any
// registration when the actor administers camps
func (w *Workflow) CancelRegistration(ctx context.Context, actor Actor, regID primitive.ObjectID) error {
	reg, err := w.registrations.GetByID(ctx, regID)
	if err != nil {
		return err
	}
	if !actor.CanAdminister() && !actor.owns(reg.Email) {
		return apperrors.Forbidden("registration belongs to another participant")
	}
	return w.registrations.Cancel(ctx, regID)
}

// ConfirmRegistration marks a registration confirmed. Admin capability only.
func (w *Workflow) ConfirmRegistration(ctx context.Context, actor Actor, regID primitive.ObjectID) error {
	if !actor.CanAdminister() {
		return apperrors.Forbidden("confirming registrations requires the admin role")
	}
	return w.registrations.Confirm(ctx, regID)
}

// AdminRoll returns the full registration roll. Admin capability only.
func (w *Workflow) AdminRoll(ctx context.Context, actor Actor) ([]*models.RegistrationSummary, error) {
	if !actor.CanAdminister() {
		return nil, apperrors.Forbidden("the registration roll requires the admin role")
	}
	return w.registrations.ListForCampAdmin(ctx)
}

// MyRegistrations returns the actor's own registrations
func (w *Workflow) MyRegistrations(ctx context.Context, actor Actor) ([]*models.Registration, error) {
	return w.registrations.ListForParticipant(ctx, actor.Email)
}

// CreatePaymentIntent creates a gateway intent for a camp's fee. The fee
// comes from the stored camp, never from the client.
func (w *Workflow) CreatePaymentIntent(ctx context.Context, actor Actor, campID primitive.ObjectID) (*models.PaymentIntent, error) {
	camp, err := w.camps.GetCamp(ctx, campID)
	if err != nil {
		return nil, err
	}
	return w.payments.CreateIntent(ctx, camp.Fees)
}

// RecordPayment records a confirmed payment against a registration the
// actor owns (or administers)
func (w *Workflow) RecordPayment(ctx context.Context, actor Actor, regID primitive.ObjectID, payload models.PaymentPayload) (*models.PaymentRecord, error) {
	reg, err := w.registrations.GetByID(ctx, regID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAdminister() && !actor.owns(reg.Email) {
		return nil, apperrors.Forbidden("registration belongs to another participant")
	}
	return w.payments.RecordPayment(ctx, regID, payload)
}

// PaymentHistory returns the payment history for an identity. Personal
// history is readable only by its owner or an admin.
func (w *Workflow) PaymentHistory(ctx context.Context, actor Actor, email string) ([]*models.PaymentRecord, error) {
	// Stored emails are lowercased; normalize the requested identity so a
	// mixed-case path parameter still matches its owner.
	email = strings.TrimSpace(strings.ToLower(email))
	if !actor.CanAdminister() && !actor.owns(email) {
		return nil, apperrors.Forbidden("payment history belongs to another participant")
	}
	return w.payments.HistoryFor(ctx, email)
}

// SubmitFeedback stores the actor's feedback for a camp
func (w *Workflow) SubmitFeedback(ctx context.Context, actor Actor, campID primitive.ObjectID, rating int, comment string) (*models.Feedback, error) {
	return w.feedback.Submit(ctx, campID, actor.Email, rating, comment)
}

// TopCamps returns the top-n camps by feedback count. Public.
func (w *Workflow) TopCamps(ctx context.Context, n int) ([]models.RankedCamp, error) {
	if n <= 0 {
		n = DefaultTopRanked
	}
	return w.feedback.TopRanked(ctx, n)
}

// AllFeedback returns every feedback entry. Public.
func (w *Workflow) AllFeedback(ctx context.Context) ([]*models.Feedback, error) {
	return w.feedback.AllFeedback(ctx)
}

// Reconcile runs the participant-counter reconciliation pass. Admin
// capability only.
func (w *Workflow) Reconcile(ctx context.Context, actor Actor) (int, error) {
	if !actor.CanAdminister() {
		return 0, apperrors.Forbidden("reconciliation requires the admin role")
	}
	return w.registrations.ReconcileParticipants(ctx)
}
