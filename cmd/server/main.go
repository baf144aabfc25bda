package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"guestpass/config"
	_ "guestpass/docs"
	"guestpass/internal/adapters/auth"
	"guestpass/internal/adapters/email"
	"guestpass/internal/adapters/notify"
	"guestpass/internal/adapters/token"
	"guestpass/internal/delivery/http/controllers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/repository/postgres"
	"guestpass/internal/services"

	delivery "guestpass/internal/delivery/http"
)

const serviceTimeout = 10 * time.Second

// @title Guestpass API
// @version 1.0
// @description Event staffing and guest admission coordinator: assignments, guest lists, RSVPs, and door check-ins.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	occurrenceRepo := postgres.NewEventOccurrenceRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	guestListRepo := postgres.NewGuestListRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	ledgerRepo := postgres.NewCheckInLedgerRepository(db)

	// Adapters
	tokens := token.NewService()
	jwtCodec := auth.NewJWTCodec(cfg.JWTSecret)
	notifier := notify.NewStaffingWebhook(nil, cfg.NotifyWebhookURL, cfg.NotifyTimeout)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    "Guestpass",
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	guestListSvc := services.NewGuestListService(guestListRepo, serviceTimeout)
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	rosterSvc := services.NewRosterService(assignmentRepo, occurrenceRepo, guestListSvc, tokens, notifier, emailSvc, logger, cfg.RSVPBaseURL, serviceTimeout)
	checkInSvc := services.NewCheckInService(rsvpRepo, ledgerRepo, guestListRepo, tokens, logger, serviceTimeout)

	// HTTP
	rosterController := controllers.NewRosterController(logger, rosterSvc)
	guestListController := controllers.NewGuestListController(logger, guestListSvc)
	rsvpController := controllers.NewRSVPController(logger, checkInSvc)
	checkInController := controllers.NewCheckInController(logger, checkInSvc)

	mux := delivery.NewRouter(rosterController, guestListController, rsvpController, checkInController, jwtCodec)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
