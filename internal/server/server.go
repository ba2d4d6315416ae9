// Package server wires the application together: it owns the router, the
// dependency graph, and the listen/shutdown lifecycle.
//
// This is the composition root — the only place that knows sqlite is the
// storage, Resend is the mailer, and which routes sit behind which
// middleware. main.go just builds a Config and calls New + Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rusba/rusba-api/internal/auth"
	"github.com/rusba/rusba-api/internal/handler"
	"github.com/rusba/rusba-api/internal/mailer"
	"github.com/rusba/rusba-api/internal/middleware"
	sqliteRepo "github.com/rusba/rusba-api/internal/repository/sqlite"
	"github.com/rusba/rusba-api/internal/service"
)

// Rate limit policy, fixed-window per client IP.
//
// Login: 5 attempts per hour. (Earlier revisions of the backend shipped
// 3/hour; 5/hour is the standardized policy now — tight enough that online
// password guessing is hopeless, loose enough that an admin who fumbles
// their password twice isn't locked out for an hour.)
//
// General API: 100 requests per 15 minutes, matching the previous backend.
const (
	loginWindow       = time.Hour
	loginLimit        = 5
	loginLimitMessage = "Too many login attempts. Please try again after an hour."

	apiWindow       = 15 * time.Minute
	apiLimit        = 100
	apiLimitMessage = "Too many requests. Please try again later."
)

// resendPlaceholder is the dummy key the .env template ships with; treating
// it as "not configured" keeps fresh checkouts in dev mode instead of
// hammering Resend with a key that can never work.
const resendPlaceholder = "re_placeholder_get_your_key_from_resend_dashboard"

// Config holds everything the server needs from the environment.
// main.go fills it in; see cmd/server for the variable names and defaults.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	AllowedOrigins []string
	ResendAPIKey   string // empty or placeholder → console-log mail fallback
	ContactFrom    string // verified sender address for outgoing mail
	ContactTo      string // operator inbox for contact notifications
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph:
//
//	sqlite.DB → stores → services → handlers → routes
//
// Schema initialization happens inside sqlite.New, so by the time New
// returns, every table exists — no handler can ever race the DDL.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes assembles middleware and the routing table.
//
// Routing table (auth requirement in brackets):
//
//	POST   /auth/login                      [login rate limit]
//	GET    /services|/products|/clients     [public]
//	POST   /services|/products|/clients     [token]
//	PUT    /services/{id}|...               [token]
//	DELETE /services/{id}|...               [token]
//	POST   /contact                         [public, general rate limit]
//	GET    /health                          [public, unthrottled]
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	// --- services and handlers ---
	userStore := sqliteRepo.NewUserStore(s.db)
	serviceStore := sqliteRepo.NewServiceStore(s.db)
	productStore := sqliteRepo.NewProductStore(s.db)
	clientStore := sqliteRepo.NewClientStore(s.db)

	authService := service.NewAuthService(userStore, tokens, auth.NewPasswordService(), s.logger)
	contentService := service.NewContentService(serviceStore, productStore, clientStore, s.logger)

	var sender mailer.Sender
	if s.config.ResendAPIKey == "" || s.config.ResendAPIKey == resendPlaceholder {
		s.logger.Warn("RESEND_API_KEY not configured, contact emails will be logged instead of sent")
		sender = mailer.NewConsoleLog(s.logger)
	} else {
		sender = mailer.NewResend(s.config.ResendAPIKey, s.config.ContactFrom, s.config.ContactTo, s.logger)
	}
	contactService := service.NewContactService(sender, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	serviceHandler := handler.NewServiceHandler(contentService, s.logger)
	productHandler := handler.NewProductHandler(contentService, s.logger)
	clientHandler := handler.NewClientHandler(contentService, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.logger)

	// Separate counter stores so login attempts and general traffic are
	// counted independently; swap these for a shared store when running
	// more than one instance.
	loginLimiter := middleware.NewRateLimiter(
		middleware.NewMemoryCounters(), loginWindow, loginLimit, loginLimitMessage, s.logger)
	apiLimiter := middleware.NewRateLimiter(
		middleware.NewMemoryCounters(), apiWindow, apiLimit, apiLimitMessage, s.logger)

	// --- global middleware, in order ---
	// RealIP must precede the rate limiters: behind the hosting proxy every
	// request shares the proxy's address until X-Forwarded-For is applied,
	// and one busy neighbour would exhaust the shared window for everyone.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.NewCORS(s.config.AllowedOrigins).Handler)

	// Health stays outside the rate limiter: the platform's liveness prober
	// must never be throttled into marking the instance dead.
	s.router.Get("/health", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(apiLimiter.Handler)

		r.With(loginLimiter.Handler).Post("/auth/login", authHandler.HandleLogin)

		r.Get("/services", serviceHandler.HandleList)
		r.Get("/products", productHandler.HandleList)
		r.Get("/clients", clientHandler.HandleList)

		r.Post("/contact", contactHandler.HandleSubmit)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Post("/services", serviceHandler.HandleCreate)
			r.Put("/services/{id}", serviceHandler.HandleUpdate)
			r.Delete("/services/{id}", serviceHandler.HandleDelete)

			r.Post("/products", productHandler.HandleCreate)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)

			r.Post("/clients", clientHandler.HandleCreate)
			r.Put("/clients/{id}", clientHandler.HandleUpdate)
			r.Delete("/clients/{id}", clientHandler.HandleDelete)
		})
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","timestamp":%q}`, time.Now().Format(time.RFC3339))
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s cap) and closes the database so the WAL is checkpointed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
