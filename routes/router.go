package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/internal/game"
	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/internal/tournament"
)

// SetupRoutes builds the gin engine and registers every feature's routes.
func SetupRoutes(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	team.TeamRoutes(api, db)
	game.GameRoutes(api, db)
	tournament.TournamentRoutes(api, db)

	return r
}
