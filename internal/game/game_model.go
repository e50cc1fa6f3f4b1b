package game

import (
	"time"

	"github.com/odovbush/sportsdb/internal/team"
)

// Game represents a fixture between two teams on a date. Team1 and Team2
// are distinct roles (home/away); a game never references the same team on
// both sides.
type Game struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	GameDate   time.Time     `json:"game_date" gorm:"column:game_date;not null"`
	Team1ID    uint          `json:"team1_id" gorm:"column:team1_id;not null"`
	Team2ID    uint          `json:"team2_id" gorm:"column:team2_id;not null"`
	ScoreTeam1 int           `json:"score_team1" gorm:"column:score_team1;not null;default:0"`
	ScoreTeam2 int           `json:"score_team2" gorm:"column:score_team2;not null;default:0"`
	Team1      *team.Summary `json:"team1,omitempty" gorm:"foreignKey:Team1ID"`
	Team2      *team.Summary `json:"team2,omitempty" gorm:"foreignKey:Team2ID"`
}
