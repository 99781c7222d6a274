package services

import (
	"context"
	"errors"
	"testing"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		fees float64
		want int64
	}{
		{25.004, 2500},
		{25, 2500},
		{9.999, 1000},
		{0.01, 1},
		{19.995, 2000},
	}
	for _, tt := range tests {
		if got := minorUnits(tt.fees); got != tt.want {
			t.Errorf("minorUnits(%v) = %d, want %d", tt.fees, got, tt.want)
		}
	}
}

func TestCreateIntentRejectsNonPositiveFee(t *testing.T) {
	env := newTestEnv()

	for _, fees := range []float64{0, -5} {
		if _, err := env.payments.CreateIntent(context.Background(), fees); !apperrors.IsValidation(err) {
			t.Fatalf("CreateIntent(%v) error = %v, want validation", fees, err)
		}
	}
	if env.gateway.calls != 0 {
		t.Fatalf("gateway called %d times for rejected fees", env.gateway.calls)
	}
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	env := newTestEnv()

	intent, err := env.payments.CreateIntent(context.Background(), 25.004)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.AmountMinor != 2500 {
		t.Fatalf("amount = %d, want 2500", intent.AmountMinor)
	}
	if intent.Currency != "usd" {
		t.Fatalf("currency = %q, want usd", intent.Currency)
	}
	if intent.IntentID == "" || intent.ClientSecret == "" {
		t.Fatal("intent handle is incomplete")
	}
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	env := newTestEnv()
	env.gateway.err = errors.New("provider unreachable")

	_, err := env.payments.CreateIntent(context.Background(), 25)
	if apperrors.KindOf(err) != apperrors.KindGateway {
		t.Fatalf("error kind = %v, want gateway", apperrors.KindOf(err))
	}
	if !errors.Is(err, env.gateway.err) {
		t.Fatal("gateway error not surfaced verbatim")
	}
	if env.paymentRepo.Len() != 0 {
		t.Fatal("gateway failure must not write payment records")
	}
}

func TestRecordPaymentUnknownRegistration(t *testing.T) {
	env := newTestEnv()

	_, err := env.payments.RecordPayment(context.Background(), primitive.NewObjectID(), models.PaymentPayload{GatewayRef: "pi_x"})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
	if env.paymentRepo.Len() != 0 {
		t.Fatal("missing registration must not produce payment records")
	}
}

func TestRecordPaymentMarksRegistrationAndAppendsRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	reg, err := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	record, err := env.payments.RecordPayment(ctx, reg.ID, models.PaymentPayload{GatewayRef: "pi_abc"})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}

	got, _ := env.regRepo.FindByID(ctx, reg.ID)
	if !got.PaymentStatus {
		t.Fatal("registration not marked paid")
	}

	if record.Email != "a@x.com" || record.CampID != camp.ID || record.GatewayRef != "pi_abc" {
		t.Fatalf("unexpected record: %+v", record)
	}
	// Amount defaults to the registration's fee snapshot.
	if record.Amount != 50 || record.AmountMinor != 5000 {
		t.Fatalf("amount = (%v, %d), want (50, 5000)", record.Amount, record.AmountMinor)
	}

	history, err := env.payments.HistoryFor(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestRecordPaymentRequiresGatewayRef(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)
	reg, _ := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))

	if _, err := env.payments.RecordPayment(ctx, reg.ID, models.PaymentPayload{}); !apperrors.IsValidation(err) {
		t.Fatalf("error = %v, want validation", err)
	}
	if env.paymentRepo.Len() != 0 {
		t.Fatal("rejected payload must not produce payment records")
	}
	got, _ := env.regRepo.FindByID(ctx, reg.ID)
	if got.PaymentStatus {
		t.Fatal("rejected payload must not mark the registration paid")
	}
}

func TestHistoryForReturnsOnlyOwnRecords(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	regA, _ := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))
	regB, _ := env.registrations.Register(ctx, camp.ID, "b@x.com", details("B"))
	env.payments.RecordPayment(ctx, regA.ID, models.PaymentPayload{GatewayRef: "pi_a"})
	env.payments.RecordPayment(ctx, regB.ID, models.PaymentPayload{GatewayRef: "pi_b"})

	history, err := env.payments.HistoryFor(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].GatewayRef != "pi_a" {
		t.Fatalf("unexpected history: %+v", history)
	}
}
