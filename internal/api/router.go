package api

import (
	"time"

	"dejargonizer/internal/api/handlers"
	"dejargonizer/pkg/auth"
	"dejargonizer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	docHandler *handlers.DocumentHandler,
	analysisHandler *handlers.AnalysisHandler,
	translateHandler *handlers.TranslateHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	api.Get("/languages", translateHandler.Languages)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/auth/verify", authHandler.Verify)

	protected.Post("/upload", docHandler.Upload)
	protected.Get("/documents", docHandler.List)
	protected.Get("/documents/:id", docHandler.Get)
	protected.Delete("/documents/:id", docHandler.Delete)

	protected.Post("/analyze/:documentId", analysisHandler.Analyze)
	protected.Get("/analysis/:documentId", analysisHandler.GetAnalysis)

	protected.Post("/translate", translateHandler.TranslateText)
	protected.Post("/translate-analysis", translateHandler.TranslateAnalysis)

	return app
}
