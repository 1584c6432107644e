package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dejargonizer/internal/api"
	"dejargonizer/internal/api/handlers"
	"dejargonizer/internal/repository"
	"dejargonizer/internal/service"
	"dejargonizer/pkg/auth"
	"dejargonizer/pkg/config"
	"dejargonizer/pkg/logger"
	"dejargonizer/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting De-Jargonizer service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	analysisRepo := repository.NewAnalysisRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	extractService := service.NewExtractService(cfg.OCR.Language, appLogger)
	docService := service.NewDocumentService(docRepo, analysisRepo, extractService, appLogger)
	analysisService := service.NewAnalysisService(docRepo, analysisRepo, llmService, appLogger)

	translator := service.NewGoogleTranslator(&cfg.Translator, appLogger)
	translateService := service.NewTranslateService(translator, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	docHandler := handlers.NewDocumentHandler(docService, appLogger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, appLogger)
	translateHandler := handlers.NewTranslateHandler(translateService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, docHandler, analysisHandler, translateHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
