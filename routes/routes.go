package routes

import (
	"net/http"

	"partypair/handlers"
	"partypair/middleware"
	"partypair/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	gameHandler *handlers.GameHandler,
	authService *services.AuthService,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Room administration (admin-authenticated)
		rooms := api.Group("/rooms")
		rooms.Use(middleware.AuthMiddleware(authService))
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("", roomHandler.ListRooms)
			rooms.PUT("/:id/teams", roomHandler.SetTeams)
			rooms.PUT("/:id/partners", roomHandler.SetPartners)
			rooms.DELETE("/:id", roomHandler.DeactivateRoom)
			rooms.GET("/:id/summary", roomHandler.Summary)
		}

		// Public participant routes
		api.GET("/validate/:code", roomHandler.ValidateRoom)
		api.POST("/join", gameHandler.JoinRoom)
		api.GET("/questions", gameHandler.GetQuestions)

		// Gameplay routes
		api.POST("/game/start", gameHandler.StartGame)
		sessions := api.Group("/sessions")
		{
			sessions.POST("/:id/answers", gameHandler.SubmitAnswers)
			sessions.GET("/:id/results/:userId", gameHandler.GetResults)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
