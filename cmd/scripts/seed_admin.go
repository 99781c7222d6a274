// Command seed_admin creates the initial admin user. Admins cannot be
// created through the API; participant accounts are created on first login
// and stay participants.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/config"
	"github.com/camp-aid/campaid-backend/internal/models"
	mongorepo "github.com/camp-aid/campaid-backend/internal/repositories/mongodb"
	mongodb "github.com/camp-aid/campaid-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		slog.Error("both -email and -password are required")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.OpTimeout)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	userRepo := mongorepo.NewUserRepository(client.Database(cfg.MongoDB.Database))

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.OpTimeout)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure user indexes", "error", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:        *email,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if apperrors.IsConflict(err) {
			slog.Error("a user with that email already exists", "email", *email)
		} else {
			slog.Error("failed to create admin user", "error", err)
		}
		os.Exit(1)
	}

	slog.Info("admin user created", "email", *email)
}
