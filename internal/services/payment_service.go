package services

import (
	"context"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"github.com/camp-aid/campaid-backend/pkg/paygateway"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PaymentServiceImpl implements PaymentService
var _ PaymentService = (*PaymentServiceImpl)(nil)

type PaymentServiceImpl struct {
	regRepo     repositories.RegistrationRepository
	paymentRepo repositories.PaymentRepository
	gateway     paygateway.Gateway
	currency    string
}

func NewPaymentService(regRepo repositories.RegistrationRepository, paymentRepo repositories.PaymentRepository, gateway paygateway.Gateway, currency string) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		regRepo:     regRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		currency:    currency,
	}
}

// minorUnits converts a fee to the gateway's integer minor-unit amount:
// multiply by 100, round to the nearest integer. 25.004 becomes 2500,
// never 2500.4 or a rejection.
func minorUnits(fees float64) int64 {
	return decimal.NewFromFloat(fees).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// CreateIntent validates the fee, converts it to minor units and delegates
// to the gateway. No local persistence happens at this phase; gateway
// failures surface verbatim and mutate nothing.
func (s *PaymentServiceImpl) CreateIntent(ctx context.Context, fees float64) (*models.PaymentIntent, error) {
	if fees <= 0 {
		return nil, apperrors.Validation("fee must be greater than zero")
	}
	amount := minorUnits(fees)
	if amount <= 0 {
		return nil, apperrors.Validation("fee amount rounds to zero")
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return nil, apperrors.Gateway(err)
	}

	return &models.PaymentIntent{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountMinor:  intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

// RecordPayment marks the registration paid via a conditional
// single-document update. The payment record is appended only after the
// update acknowledges a match, so no record can ever reference a
// nonexistent registration.
func (s *PaymentServiceImpl) RecordPayment(ctx context.Context, regID primitive.ObjectID, payload models.PaymentPayload) (*models.PaymentRecord, error) {
	if payload.GatewayRef == "" {
		return nil, apperrors.Validation("gateway reference is required")
	}

	reg, err := s.regRepo.FindByID(ctx, regID)
	if err != nil {
		return nil, err
	}

	matched, err := s.regRepo.SetPaymentStatus(ctx, regID)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Registration vanished between the read and the update. Nothing
		// was written and nothing more will be.
		return nil, apperrors.NotFound("registration not found")
	}

	amount := payload.Amount
	if amount == 0 {
		amount = reg.CampFees
	}

	record := &models.PaymentRecord{
		CampID:      reg.CampID,
		Email:       reg.Email,
		Amount:      amount,
		AmountMinor: minorUnits(amount),
		GatewayRef:  payload.GatewayRef,
		CampName:    reg.CampName,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		// The registration is marked paid but the history row is missing.
		// Surface the store failure; the gateway reference lets support
		// re-append the record.
		slog.Error("payment record append failed after status update",
			"registrationId", regID.Hex(), "gatewayRef", payload.GatewayRef, "error", err)
		return nil, err
	}

	slog.Info("payment recorded", "registrationId", regID.Hex(), "email", reg.Email, "amount", amount)
	return record, nil
}

// HistoryFor returns all payment records for an identity in insertion order
func (s *PaymentServiceImpl) HistoryFor(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	var records []*models.PaymentRecord
	err := retryRead(ctx, func() error {
		var e error
		records, e = s.paymentRepo.FindByEmail(ctx, email)
		return e
	})
	return records, err
}
