package services

import (
	"context"
	"testing"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterAndCancelKeepCounterConsistent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	regA, err := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))
	if err != nil {
		t.Fatalf("register a@x.com: %v", err)
	}
	if got := env.participants(camp.ID); got != 1 {
		t.Fatalf("participants after first register = %d, want 1", got)
	}

	if _, err := env.registrations.Register(ctx, camp.ID, "b@x.com", details("B")); err != nil {
		t.Fatalf("register b@x.com: %v", err)
	}
	if got := env.participants(camp.ID); got != 2 {
		t.Fatalf("participants after second register = %d, want 2", got)
	}

	// Repeat registration is a conflict, not a failure, and moves nothing.
	if _, err := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A")); !apperrors.IsConflict(err) {
		t.Fatalf("duplicate register error = %v, want conflict", err)
	}
	if got := env.participants(camp.ID); got != 2 {
		t.Fatalf("participants after duplicate register = %d, want 2", got)
	}
	if n, _ := env.regRepo.CountByCamp(ctx, camp.ID); n != 2 {
		t.Fatalf("stored registrations = %d, want 2", n)
	}

	if err := env.registrations.Cancel(ctx, regA.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := env.participants(camp.ID); got != 1 {
		t.Fatalf("participants after cancel = %d, want 1", got)
	}
	if n, _ := env.regRepo.CountByCamp(ctx, camp.ID); n != 1 {
		t.Fatalf("stored registrations after cancel = %d, want 1", n)
	}
}

func TestRegisterUnknownCamp(t *testing.T) {
	env := newTestEnv()

	_, err := env.registrations.Register(context.Background(), primitive.NewObjectID(), "a@x.com", details("A"))
	if !apperrors.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	camp := env.mustCreateCamp("Camp X", 50)

	if _, err := env.registrations.Register(context.Background(), camp.ID, "", details("A")); !apperrors.IsValidation(err) {
		t.Fatalf("empty email error = %v, want validation", err)
	}
	if _, err := env.registrations.Register(context.Background(), camp.ID, "a@x.com", details("")); !apperrors.IsValidation(err) {
		t.Fatalf("empty name error = %v, want validation", err)
	}
	if got := env.participants(camp.ID); got != 0 {
		t.Fatalf("participants after rejected registers = %d, want 0", got)
	}
}

func TestRegisterSnapshotsCampFields(t *testing.T) {
	env := newTestEnv()
	camp := env.mustCreateCamp("Camp X", 75.5)

	reg, err := env.registrations.Register(context.Background(), camp.ID, "a@x.com", details("A"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.CampName != "Camp X" || reg.CampFees != 75.5 {
		t.Fatalf("snapshot = (%q, %v), want (Camp X, 75.5)", reg.CampName, reg.CampFees)
	}
	if reg.PaymentStatus || reg.ConfirmationStatus {
		t.Fatal("new registration must start unpaid and unconfirmed")
	}
}

func TestCancelUnknownRegistration(t *testing.T) {
	env := newTestEnv()

	err := env.registrations.Cancel(context.Background(), primitive.NewObjectID())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	reg, err := env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := env.registrations.Confirm(ctx, reg.ID); err != nil {
			t.Fatalf("confirm call %d: %v", i+1, err)
		}
	}

	got, err := env.registrations.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ConfirmationStatus {
		t.Fatal("registration not confirmed")
	}
}

func TestListForParticipantFiltersByIdentity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campX := env.mustCreateCamp("Camp X", 50)
	campY := env.mustCreateCamp("Camp Y", 60)

	env.registrations.Register(ctx, campX.ID, "a@x.com", details("A"))
	env.registrations.Register(ctx, campY.ID, "a@x.com", details("A"))
	env.registrations.Register(ctx, campX.ID, "b@x.com", details("B"))

	regs, err := env.registrations.ListForParticipant(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("registrations for a@x.com = %d, want 2", len(regs))
	}
	for _, reg := range regs {
		if reg.Email != "a@x.com" {
			t.Fatalf("listing leaked registration for %q", reg.Email)
		}
	}
}

func TestAdminRollExcludesDetailPayload(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	env.registrations.Register(ctx, camp.ID, "a@x.com", details("Alice"))

	summaries, err := env.registrations.ListForCampAdmin(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.ParticipantName != "Alice" || s.CampName != "Camp X" || s.Email != "a@x.com" {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestReconcileCorrectsDrift(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	env.registrations.Register(ctx, camp.ID, "a@x.com", details("A"))
	env.registrations.Register(ctx, camp.ID, "b@x.com", details("B"))

	// Simulate drift from a crash between insert and increment.
	if err := env.campRepo.SetParticipants(ctx, camp.ID, 7); err != nil {
		t.Fatalf("seed drift: %v", err)
	}

	corrected, err := env.registrations.ReconcileParticipants(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if corrected != 1 {
		t.Fatalf("corrected = %d, want 1", corrected)
	}
	if got := env.participants(camp.ID); got != 2 {
		t.Fatalf("participants after reconcile = %d, want 2", got)
	}

	// A second pass finds nothing to fix.
	corrected, err = env.registrations.ReconcileParticipants(ctx)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if corrected != 0 {
		t.Fatalf("second pass corrected = %d, want 0", corrected)
	}
}
