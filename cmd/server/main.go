package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"whisperlink.backend/internal/config"
	"whisperlink.backend/internal/infrastructure/ai"
	"whisperlink.backend/internal/infrastructure/datasources/postgres"
	"whisperlink.backend/internal/infrastructure/email"
	"whisperlink.backend/internal/infrastructure/repositories"
	"whisperlink.backend/internal/interfaces/http/handlers"
	"whisperlink.backend/internal/usecases"
	"whisperlink.backend/pkg/jwt"
	"whisperlink.backend/pkg/logger"
	"whisperlink.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	connectDB  = postgres.Connect
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs sign-out token revocation. Without it sign-out still
	// clears the cookie; the token just stays valid until expiry.
	revocationEnabled := cfg.Redis.URL != ""
	if revocationEnabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Warn(context.Background(), "REDIS_URL not set, sign-out revocation disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info(context.Background(), "Connected to PostgreSQL")

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	revocationStore := redis.NewRevocationStore(revocationEnabled)

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	dispatcher := email.NewDispatcher(cfg.SMTP)
	aiClient := ai.NewClient(cfg.AI)

	authUsecase := usecases.NewAuthUsecase(userRepo, messageRepo, dispatcher, jwtService, revocationStore)
	messageUsecase := usecases.NewMessageUsecase(userRepo, messageRepo)
	assistantUsecase := usecases.NewAssistantUsecase(aiClient)

	secureCookies := cfg.Server.Env == "production"

	deps := routeDeps{
		authHandler:    handlers.NewAuthHandler(authUsecase, cfg.JWT.Expiry, secureCookies),
		userHandler:    handlers.NewUserHandler(authUsecase, messageUsecase),
		messageHandler: handlers.NewMessageHandler(messageUsecase),
		aiHandler:      handlers.NewAIHandler(assistantUsecase),
		jwtService:     jwtService,
		revocation:     revocationStore,
		secureCookies:  secureCookies,
	}

	r := buildRouter(deps)

	logger.Info(context.Background(), "Starting server", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
