package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-medicine-api/internal/config"
	"hospital-medicine-api/internal/database"
	"hospital-medicine-api/internal/handler"
	"hospital-medicine-api/internal/middleware"
	"hospital-medicine-api/internal/repository"
	"hospital-medicine-api/internal/service"
	"hospital-medicine-api/internal/transform"
	"hospital-medicine-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	logger := utils.InitLogger(cfg.Server.GinMode)
	log.Info().Msg("Configuration loaded successfully")

	// 2. Token signer
	signer := utils.NewTokenSigner(cfg.JWT.Secret)

	// 3. Initialize database connection
	db := database.Connect(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 4. Initialize repositories
	hospitalRepo := repository.NewHospitalRepo(db)
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	mapper := transform.NewMapper(transform.ParseMode(cfg.Parse.Mode))
	hospitalService := service.NewHospitalService(hospitalRepo, auditRepo, mapper)
	authService := service.NewAuthService(userRepo, auditRepo, signer)

	// Ensure the bootstrap user exists
	if cfg.Admin.Password != "" {
		created, err := authService.EnsureUser(context.Background(), cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Roles)
		if err != nil {
			log.Fatal().Err(err).Str("username", cfg.Admin.Username).Msg("Failed to ensure admin user")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("Admin user created")
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD not set, no bootstrap user ensured")
	}

	// 6. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	r := handler.NewRouter(handler.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		Metrics:         middleware.NewMetrics(),
		Signer:          signer,
		HospitalService: hospitalService,
		AuthService:     authService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 7. Setup graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("parse_mode", cfg.Parse.Mode).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
