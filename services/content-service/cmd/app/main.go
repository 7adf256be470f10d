package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduplatform/pkg/logger"
	"eduplatform/services/content-service/internal/client"
	"eduplatform/services/content-service/internal/config"
	"eduplatform/services/content-service/internal/infrastructure/repository"
	handlers "eduplatform/services/content-service/internal/transport/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("content-service")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate DB")
	}

	contentRepo := repository.NewContentRepository(db)
	userClient := client.NewUserClient(cfg.UserURL)
	courseClient := client.NewCourseClient(cfg.CourseURL)
	enrollmentClient := client.NewEnrollmentClient(cfg.EnrollmentURL)

	contentHandler := handlers.NewContentHandler(contentRepo, userClient, enrollmentClient, courseClient, log)

	router := handlers.NewRouter(contentHandler)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPPort).Msg("Content delivery service is running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
}
