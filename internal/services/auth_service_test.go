package services

import (
	"context"
	"testing"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/config"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories/memory"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthServiceImpl, *memory.UserRepository) {
	userRepo := memory.NewUserRepository()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return NewAuthService(userRepo, cfg), userRepo
}

func TestLoginCreatesParticipantOnFirstUse(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	resp, err := svc.Login(ctx, "A@X.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("no token issued")
	}
	if resp.Role != models.RoleParticipant {
		t.Fatalf("role = %q, want participant", resp.Role)
	}

	// Email is normalized before storage.
	user, err := userRepo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Role != models.RoleParticipant {
		t.Fatalf("stored role = %q, want participant", user.Role)
	}

	// A second login reuses the user.
	if _, err := svc.Login(ctx, "a@x.com"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	users, _ := userRepo.FindAll(ctx)
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
}

func TestLoginNeverEscalatesRole(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	userRepo.Create(ctx, &models.User{Email: "admin@campaid.org", Role: models.RoleAdmin, PasswordHash: string(hash)})

	resp, err := svc.Login(ctx, "admin@campaid.org")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != models.RoleAdmin {
		t.Fatalf("existing role = %q, want admin preserved", resp.Role)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	userRepo.Create(ctx, &models.User{Email: "admin@campaid.org", Role: models.RoleAdmin, PasswordHash: string(hash)})

	if _, err := svc.AdminLogin(ctx, "admin@campaid.org", "wrong"); !apperrors.IsForbidden(err) {
		t.Fatalf("wrong password error = %v, want forbidden", err)
	}
	if _, err := svc.AdminLogin(ctx, "nobody@campaid.org", "s3cret"); !apperrors.IsForbidden(err) {
		t.Fatalf("unknown admin error = %v, want forbidden", err)
	}

	resp, err := svc.AdminLogin(ctx, "admin@campaid.org", "s3cret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if resp.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", resp.Role)
	}
}

func TestAdminLoginRejectsParticipants(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Login(ctx, "a@x.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "a@x.com", "anything"); !apperrors.IsForbidden(err) {
		t.Fatalf("participant admin-login error = %v, want forbidden", err)
	}
}

func TestIsAdmin(t *testing.T) {
	svc, userRepo := newAuthService()
	ctx := context.Background()

	userRepo.Create(ctx, &models.User{Email: "admin@campaid.org", Role: models.RoleAdmin})
	svc.Login(ctx, "a@x.com")

	for _, tc := range []struct {
		email string
		want  bool
	}{
		{"admin@campaid.org", true},
		{"a@x.com", false},
		{"unknown@x.com", false},
	} {
		got, err := svc.IsAdmin(ctx, tc.email)
		if err != nil {
			t.Fatalf("IsAdmin(%s): %v", tc.email, err)
		}
		if got != tc.want {
			t.Errorf("IsAdmin(%s) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
