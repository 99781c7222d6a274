package services

import (
	"context"
	"strings"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure RegistrationServiceImpl implements RegistrationService
var _ RegistrationService = (*RegistrationServiceImpl)(nil)

type RegistrationServiceImpl struct {
	campRepo repositories.CampRepository
	regRepo  repositories.RegistrationRepository
}

func NewRegistrationService(campRepo repositories.CampRepository, regRepo repositories.RegistrationRepository) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{
		campRepo: campRepo,
		regRepo:  regRepo,
	}
}

// Register creates a registration for (campID, email) and increments the
// camp's participant counter. The two writes are not atomic as a pair: the
// increment runs only after an acknowledged insert, so an insert failure
// can never over-count. A crash between the writes under-counts until the
// next reconciliation pass.
func (s *RegistrationServiceImpl) Register(ctx context.Context, campID primitive.ObjectID, email string, details models.ParticipantDetails) (*models.Registration, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if details.Name == "" {
		return nil, apperrors.Validation("participant name is required")
	}

	camp, err := s.campRepo.FindByID(ctx, campID)
	if err != nil {
		return nil, err
	}

	// Fast path only. Two concurrent calls can both miss here; the unique
	// index on (campId, email) is the authoritative guard.
	if _, err := s.regRepo.FindByCampAndEmail(ctx, campID, email); err == nil {
		return nil, apperrors.Conflict("already registered for this camp")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	reg := &models.Registration{
		CampID:      campID,
		Email:       email,
		CampName:    camp.Name,
		CampFees:    camp.Fees,
		Participant: details,
	}
	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}

	if err := s.campRepo.AdjustParticipants(ctx, campID, 1); err != nil {
		// The registration exists, so the request succeeded; the counter is
		// now low until reconciliation recounts it.
		slog.Warn("participant counter increment failed after insert",
			"campId", campID.Hex(), "registrationId", reg.ID.Hex(), "error", err)
	}

	slog.Info("participant registered", "campId", campID.Hex(), "email", email)
	return reg, nil
}

// Cancel deletes the registration first and decrements the counter second.
// The decrement never runs when the delete fails, so the two writes cannot
// both be skipped silently; a crash between them leaves a transient
// over-count that reconciliation corrects.
func (s *RegistrationServiceImpl) Cancel(ctx context.Context, regID primitive.ObjectID) error {
	reg, err := s.regRepo.FindByID(ctx, regID)
	if err != nil {
		return err
	}

	if err := s.regRepo.Delete(ctx, regID); err != nil {
		return err
	}

	if err := s.campRepo.AdjustParticipants(ctx, reg.CampID, -1); err != nil {
		slog.Warn("participant counter decrement failed after delete",
			"campId", reg.CampID.Hex(), "registrationId", regID.Hex(), "error", err)
	}

	slog.Info("registration cancelled", "campId", reg.CampID.Hex(), "email", reg.Email)
	return nil
}

// Confirm marks the registration confirmed. A repeat call rewrites the
// same value, so the operation is idempotent.
func (s *RegistrationServiceImpl) Confirm(ctx context.Context, regID primitive.ObjectID) error {
	return s.regRepo.SetConfirmationStatus(ctx, regID)
}

// GetByID retrieves a registration
func (s *RegistrationServiceImpl) GetByID(ctx context.Context, regID primitive.ObjectID) (*models.Registration, error) {
	var reg *models.Registration
	err := retryRead(ctx, func() error {
		var e error
		reg, e = s.regRepo.FindByID(ctx, regID)
		return e
	})
	return reg, err
}

// ListForCampAdmin returns the admin roll projection
func (s *RegistrationServiceImpl) ListForCampAdmin(ctx context.Context) ([]*models.RegistrationSummary, error) {
	var summaries []*models.RegistrationSummary
	err := retryRead(ctx, func() error {
		var e error
		summaries, e = s.regRepo.FindAllSummaries(ctx)
		return e
	})
	return summaries, err
}

// ListForParticipant returns the registrations owned by an identity
func (s *RegistrationServiceImpl) ListForParticipant(ctx context.Context, email string) ([]*models.Registration, error) {
	var regs []*models.Registration
	err := retryRead(ctx, func() error {
		var e error
		regs, e = s.regRepo.FindByEmail(ctx, email)
		return e
	})
	return regs, err
}

// ReconcileParticipants recomputes each camp's participants counter from a
// live registration count. Drift is corrected silently and logged as an
// inconsistency event; it is never surfaced to end users.
func (s *RegistrationServiceImpl) ReconcileParticipants(ctx context.Context) (int, error) {
	camps, err := s.campRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, camp := range camps {
		live, err := s.regRepo.CountByCamp(ctx, camp.ID)
		if err != nil {
			return corrected, err
		}
		if int(live) == camp.Participants {
			continue
		}

		drift := apperrors.Inconsistent("camp %s counter %d, live count %d",
			camp.ID.Hex(), camp.Participants, live)
		slog.Warn("participant counter drift corrected",
			"campId", camp.ID.Hex(), "stored", camp.Participants, "live", live, "event", drift.Error())

		if err := s.campRepo.SetParticipants(ctx, camp.ID, int(live)); err != nil {
			return corrected, err
		}
		corrected++
	}

	return corrected, nil
}
