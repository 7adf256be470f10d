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
	"eduplatform/services/auth-service/internal/application/usecase"
	"eduplatform/services/auth-service/internal/config"
	"eduplatform/services/auth-service/internal/infrastructure/repository"
	"eduplatform/services/auth-service/internal/infrastructure/security"
	"eduplatform/services/auth-service/internal/middleware"
	handlers "eduplatform/services/auth-service/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("auth-service")

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

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.JWTSecret)

	authUseCase := usecase.NewAuthUseCase(userRepo, studentRepo, hasher, tokenManager)
	authHandler := handlers.NewAuthHandler(authUseCase)
	limiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(authHandler, limiter)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPPort).Msg("Auth service is running")
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
