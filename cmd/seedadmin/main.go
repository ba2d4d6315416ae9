// Command seedadmin creates the admin user. It is the ONLY way admin
// accounts come into existence — the API has no registration endpoint, and
// users are never created, updated, or deleted over HTTP.
//
// Run once after deploying (or whenever the database file is recreated):
//
//	ADMIN_USERNAME=admin ADMIN_PASSWORD='...' go run ./cmd/seedadmin
//
// The command is idempotent: if the username already exists it reports so
// and exits successfully without touching the row.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/auth"
	"github.com/rusba/rusba-api/internal/model"
	sqliteRepo "github.com/rusba/rusba-api/internal/repository/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	dbPath := "data/rusba.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Error("ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	// sqlite.New initializes the schema, so seeding works on a fresh file.
	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	users := sqliteRepo.NewUserStore(db)

	_, err = users.GetByUsername(ctx, username)
	if err == nil {
		logger.Info("admin user already exists", slog.String("username", username))
		return
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		logger.Error("failed to check for existing admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		logger.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Role:     "admin",
	}
	if err := users.Create(ctx, user); err != nil {
		logger.Error("failed to create admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("admin user created",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)
}
