// Package main is the entry point for the content API server.
//
// main stays minimal by design: read configuration, create the logger, hand
// everything to internal/server. All actual behaviour lives in the internal
// packages so it can be tested without a running process.
//
// Environment variables (all optional, with development defaults):
//
//	PORT             listening port                    (default 5100)
//	DB_PATH          SQLite database file              (default data/rusba.db)
//	JWT_SECRET       token signing secret              (default is NOT production-safe)
//	ALLOWED_ORIGINS  comma-separated CORS allow-list   (default: known site origins)
//	RESEND_API_KEY   email provider key                (unset → console-log fallback)
//	CONTACT_FROM     verified sender address
//	CONTACT_TO       operator inbox for contact mail
//
// A .env file next to the binary is loaded if present (godotenv), so local
// development doesn't need exported shell variables.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rusba/rusba-api/internal/server"
)

// defaultJWTSecret keeps development working with zero configuration. It is
// public knowledge by definition — deploying with it means anyone can forge
// admin tokens, hence the loud warning below.
const defaultJWTSecret = "your-secret-key"

var defaultOrigins = []string{
	"http://localhost:3000",
	"https://rusba-ng.netlify.app",
	"https://rusbadsl.com.ng",
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Missing .env is normal (production injects real env vars); any other
	// error would also surface as missing config below, so best-effort here.
	_ = godotenv.Load()

	port := 5100
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/rusba.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		logger.Warn("JWT_SECRET not set, using the development default — do NOT deploy like this")
	}

	origins := defaultOrigins
	if envOrigins := os.Getenv("ALLOWED_ORIGINS"); envOrigins != "" {
		origins = nil
		for _, o := range strings.Split(envOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	contactFrom := os.Getenv("CONTACT_FROM")
	if contactFrom == "" {
		contactFrom = "Contact Form <noreply@rusbadsl.com.ng>"
	}
	contactTo := os.Getenv("CONTACT_TO")
	if contactTo == "" {
		contactTo = "contact@rusbadsl.com.ng"
	}

	cfg := server.Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		AllowedOrigins: origins,
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ContactFrom:    contactFrom,
		ContactTo:      contactTo,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
