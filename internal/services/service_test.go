package services

import (
	"context"
	"errors"
	"testing"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// flakyPaymentRepo wraps the memory store and fails FindByEmail with a
// store-unavailable error a configured number of times before recovering.
type flakyPaymentRepo struct {
	*memory.PaymentRepository
	failures int
	calls    int
}

func (r *flakyPaymentRepo) FindByEmail(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	r.calls++
	if r.failures > 0 {
		r.failures--
		return nil, apperrors.Store(errors.New("connection reset by peer"))
	}
	return r.PaymentRepository.FindByEmail(ctx, email)
}

func TestHistoryRetriesOnceAfterStoreOutage(t *testing.T) {
	inner := memory.NewPaymentRepository()
	record := &models.PaymentRecord{CampID: primitive.NewObjectID(), Email: "a@x.com", AmountMinor: 2500}
	if err := inner.Create(context.Background(), record); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	repo := &flakyPaymentRepo{PaymentRepository: inner, failures: 1}
	svc := NewPaymentService(memory.NewRegistrationRepository(), repo, &stubGateway{}, "usd")

	records, err := svc.HistoryFor(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("expected the retry to recover, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after retry, got %d", len(records))
	}
	if repo.calls != 2 {
		t.Fatalf("expected exactly 2 read attempts, got %d", repo.calls)
	}
}

func TestHistorySurfacesPersistentStoreOutage(t *testing.T) {
	repo := &flakyPaymentRepo{PaymentRepository: memory.NewPaymentRepository(), failures: 2}
	svc := NewPaymentService(memory.NewRegistrationRepository(), repo, &stubGateway{}, "usd")

	_, err := svc.HistoryFor(context.Background(), "a@x.com")
	if apperrors.KindOf(err) != apperrors.KindStoreUnavailable {
		t.Fatalf("expected store-unavailable after the single retry, got %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected exactly 2 read attempts, got %d", repo.calls)
	}
}

func TestHistoryDoesNotRetryCancelledContext(t *testing.T) {
	repo := &flakyPaymentRepo{PaymentRepository: memory.NewPaymentRepository(), failures: 2}
	svc := NewPaymentService(memory.NewRegistrationRepository(), repo, &stubGateway{}, "usd")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.HistoryFor(ctx, "a@x.com")
	if apperrors.KindOf(err) != apperrors.KindStoreUnavailable {
		t.Fatalf("expected the original store error, got %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected a single attempt under a cancelled context, got %d", repo.calls)
	}
}

func TestRetryReadSkipsNonRetryableErrors(t *testing.T) {
	calls := 0
	err := retryRead(context.Background(), func() error {
		calls++
		return apperrors.NotFound("no such thing")
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected the not-found error unchanged, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no retry for a non-retryable error, got %d calls", calls)
	}
}
