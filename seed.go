package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/internal/team"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// seedTeams creates a starter set of teams when the table is empty so the
// games endpoints have something to reference on a fresh database.
func seedTeams(db *gorm.DB) error {
	var count int64
	if err := db.Model(&team.Team{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	teams := []team.Team{
		{Name: "FC Barcelona", City: strPtr("Barcelona"), FoundedYear: intPtr(1899)},
		{Name: "Real Madrid", City: strPtr("Madrid"), FoundedYear: intPtr(1902)},
		{Name: "Manchester United", City: strPtr("Manchester"), FoundedYear: intPtr(1878)},
		{Name: "Liverpool FC", City: strPtr("Liverpool"), FoundedYear: intPtr(1892)},
	}
	if err := db.Create(&teams).Error; err != nil {
		return err
	}
	log.Println("Initial teams created.")
	return nil
}
