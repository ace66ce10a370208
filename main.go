package main

import (
	"context"
	"log"
	"time"

	"partypair/config"
	"partypair/handlers"
	"partypair/models"
	"partypair/routes"
	"partypair/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Admin{},
		&models.GameRoom{},
		&models.User{},
		&models.GameSession{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	roomService := services.NewRoomService(db)
	participantService := services.NewParticipantService(db)
	sessionService := services.NewSessionService(db)
	answerService := services.NewAnswerService(db, redisClient, sessionService)
	resultService := services.NewResultService(db, redisClient, sessionService, answerService)

	// Background expiry sweep for stale rooms
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	services.StartSweeper(ctx, roomService, time.Hour)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService, resultService)
	gameHandler := handlers.NewGameHandler(roomService, participantService, sessionService, answerService, resultService)

	// Setup Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// Setup routes
	routes.SetupRoutes(router, authHandler, roomHandler, gameHandler, authService)

	// Start server
	addr := cfg.BindAddress + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
