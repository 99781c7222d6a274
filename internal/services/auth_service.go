package services

import (
	"context"
	"strings"
	"time"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/config"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login finds or creates a participant user for the verified email and
// issues a session token. First login creates the user with the
// participant role.
func (s *AuthServiceImpl) Login(ctx context.Context, email string) (*models.LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		user = &models.User{Email: email, Role: models.RoleParticipant}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// A concurrent first login may have created the user already.
			if !apperrors.IsConflict(err) {
				return nil, err
			}
			if user, err = s.userRepo.FindByEmail(ctx, email); err != nil {
				return nil, err
			}
		} else {
			slog.Info("participant user created", "email", email)
		}
	} else if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// AdminLogin verifies an admin password and issues a session token
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Forbidden("invalid credentials")
		}
		return nil, err
	}
	if !user.IsAdmin() || user.PasswordHash == "" {
		return nil, apperrors.Forbidden("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Forbidden("invalid credentials")
	}

	return s.issueToken(user)
}

// IsAdmin reports whether the identity holds the admin role
func (s *AuthServiceImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

// ListUsers returns all users for the admin console
func (s *AuthServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := retryRead(ctx, func() error {
		var e error
		users, e = s.userRepo.FindAll(ctx)
		return e
	})
	return users, err
}

// RemoveUser deletes a user account
func (s *AuthServiceImpl) RemoveUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*models.LoginResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Email,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: signed,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
