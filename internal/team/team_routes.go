package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB) {
	teamRepo := NewTeamRepository(db)
	teamController := NewTeamController(teamRepo)

	router.GET("/teams", teamController.GetAllTeams)
	router.GET("/teams/:id", teamController.GetTeamByID)
	router.POST("/teams", teamController.CreateTeam)
	router.PUT("/teams/:id", teamController.UpdateTeam)
	router.DELETE("/teams/:id", teamController.DeleteTeam)
}
