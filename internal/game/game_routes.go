package game

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GameRoutes sets up all game-related routes.
func GameRoutes(router *gin.RouterGroup, db *gorm.DB) {
	gameRepo := NewGameRepository(db)
	gameController := NewGameController(gameRepo)

	router.GET("/games", gameController.GetAllGames)
	router.GET("/games/:id", gameController.GetGameByID)
	router.POST("/games", gameController.CreateGame)
	router.PUT("/games/:id", gameController.UpdateGame)
	router.DELETE("/games/:id", gameController.DeleteGame)
}
