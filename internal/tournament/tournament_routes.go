package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/internal/game"
)

// TournamentRoutes sets up the tournament routes.
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB) {
	writer := NewWriter(db, game.NewGameRepository(db))
	tournamentController := NewTournamentController(writer)

	router.POST("/tournaments", tournamentController.CreateTournament)
}
