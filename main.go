package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"familyagenda/config"
	"familyagenda/internal/adapters/auth"
	"familyagenda/internal/adapters/email"
	httpdelivery "familyagenda/internal/delivery/http"
	"familyagenda/internal/delivery/http/controllers"
	"familyagenda/internal/delivery/http/middleware"
	"familyagenda/internal/repository/postgres"
	"familyagenda/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Family Agenda API
// @version 1.0
// @description Shared agenda for families: events created by parents, invitations for members.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()
	logger.Info("starting familyagenda", "environment", cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	tokenCodec := auth.NewJWTCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authSvc := services.NewAuthService(userRepo, roleRepo, hasher, tokenCodec, cfg.TokenExpiry, emailSvc, logger)
	userSvc := services.NewUserService(userRepo)
	eventSvc := services.NewEventService(eventRepo, invitationRepo, userRepo, roleRepo, emailSvc, logger, serviceTimeout)
	invitationSvc := services.NewInvitationService(invitationRepo, eventRepo, userRepo, emailSvc, logger, serviceTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, authSvc)
	userController := controllers.NewUserController(logger, userSvc)
	eventController := controllers.NewEventController(logger, eventSvc)
	invitationController := controllers.NewInvitationController(logger, invitationSvc)

	mux := httpdelivery.NewRouter(authController, userController, eventController, invitationController, tokenCodec)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	logger.Info("server exited")
}
