package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Validation("bad input"), KindValidation},
		{NotFound("missing"), KindNotFound},
		{Conflict("duplicate"), KindConflict},
		{Forbidden("not yours"), KindForbidden},
		{Gateway(errors.New("down")), KindGateway},
		{Store(errors.New("timeout")), KindStoreUnavailable},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", Conflict("already registered"))
	if !IsConflict(err) {
		t.Fatal("wrapped conflict not detected")
	}
}

func TestGatewayPreservesCause(t *testing.T) {
	cause := errors.New("provider unreachable")
	err := Gateway(cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if !IsRetryable(err) {
		t.Fatal("gateway errors are retryable")
	}
}

func TestRetryable(t *testing.T) {
	if IsRetryable(Conflict("dup")) || IsRetryable(Validation("bad")) {
		t.Fatal("expected negative results are not retryable")
	}
	if !IsRetryable(Store(errors.New("timeout"))) {
		t.Fatal("store unavailability is retryable")
	}
}
