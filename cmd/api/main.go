package main

import (
	"fmt"
	"time"

	"taskify/configs"
	v1 "taskify/internal/api/v1"
	"taskify/internal/config"
	"taskify/internal/middleware"
	"taskify/internal/repository"
	"taskify/pkg/database"
	"taskify/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.TokenExpiry = time.Duration(cfg.JWTExpireHours) * time.Hour
	config.CookieSecure = cfg.IsProduction()

	// Inisialisasi MongoDB
	mongoClient := database.ConnectMongo(cfg)
	defer mongoClient.Disconnect(config.Ctx)
	config.DB = mongoClient.Database(cfg.MongoDBName)

	logger.SystemLogger.Info("Database Connected")

	// Buat index unik jika belum ada
	repository.EnsureIndexes(config.DB)

	// Inisialisasi Redis
	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Default route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World")
	})

	// Daftarkan route API
	v1.RegisterRoutes(app)

	// Route yang tidak terdaftar
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
