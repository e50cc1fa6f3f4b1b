package main

import (
	"log"

	"github.com/odovbush/sportsdb/config"
	_ "github.com/odovbush/sportsdb/docs"
	"github.com/odovbush/sportsdb/internal/game"
	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/routes"
)

// @title Sports Fixtures REST API
// @version 1.0
// @description Teams and games management with filtered listings and atomic tournament batches.
// @host localhost:8090
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&team.Team{}, &game.Game{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := seedTeams(db); err != nil {
		log.Fatalf("Seeding teams failed: %v", err)
	}

	r := routes.SetupRoutes(db)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
