package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq"

	"eventstaffing/config"
	"eventstaffing/internal/adapters/auth"
	"eventstaffing/internal/adapters/email"
	deliveryhttp "eventstaffing/internal/delivery/http"
	"eventstaffing/internal/delivery/http/controllers"
	"eventstaffing/internal/delivery/http/middleware"
	"eventstaffing/internal/repository/postgres"
	"eventstaffing/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Event Staffing API
// @version 1.0
// @description Staffing backend for gig events: positions, employments, and attendance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

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

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	categoryRepo := postgres.NewPositionCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	positionRepo := postgres.NewJobPositionRepository(db)
	employmentRepo := postgres.NewEmploymentRepository(db)
	workedHoursRepo := postgres.NewWorkedHoursRepository(db)
	managerRepo := postgres.NewEventManagerRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	authorizer := services.NewAuthzService(managerRepo)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, venueRepo, userRepo, managerRepo, authorizer, serviceTimeout)
	positionService := services.NewJobPositionService(positionRepo, eventRepo, categoryRepo, employmentRepo, authorizer)
	staffingService := services.NewStaffingService(employmentRepo, positionRepo, eventRepo, userRepo, authorizer, emailService)
	attendanceService := services.NewAttendanceService(workedHoursRepo, employmentRepo, positionRepo, eventRepo)

	// HTTP
	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:       controllers.NewAuthController(logger, authService),
		User:       controllers.NewUserController(logger, userService),
		Venue:      controllers.NewVenueController(logger, venueRepo),
		Category:   controllers.NewCategoryController(logger, categoryRepo),
		Event:      controllers.NewEventController(logger, eventService),
		Position:   controllers.NewPositionController(logger, positionService),
		Employment: controllers.NewEmploymentController(logger, staffingService),
		Attendance: controllers.NewAttendanceController(logger, attendanceService, workedHoursRepo),
	}, tokenVerifier, userRepo)

	handler := middleware.LoggingMiddleware(logger, router)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
