package tournament

import (
	"strings"

	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/internal/game"
	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/pkg/apperrors"
	"github.com/odovbush/sportsdb/pkg/txn"
)

// Writer creates a whole tournament batch atomically: either every fixture
// is persisted or none is.
type Writer struct {
	db    *gorm.DB
	games game.GameRepository
}

// NewWriter creates a tournament Writer.
func NewWriter(db *gorm.DB, games game.GameRepository) *Writer {
	return &Writer{db: db, games: games}
}

// Result reports the outcome of a created tournament.
type Result struct {
	Name         string `json:"tournament"`
	GamesCreated int    `json:"games_created"`
}

// CreateTournament validates the proposed fixtures against the known team
// set and inserts them inside one transaction. The known team ids are
// fetched within that same transaction, and the inserts skip the per-game
// existence check the batch validation has already proven. Any failure rolls
// the whole batch back.
func (w *Writer) CreateTournament(name string, proposed []ProposedFixture) (*Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("tournament name is required")
	}
	if len(proposed) == 0 {
		return nil, apperrors.NewValidation("tournament must contain at least one fixture")
	}

	created := 0
	err := txn.WithTimeout(w.db, "tournament create", func(tx *gorm.DB) error {
		var knownIDs []uint
		if err := tx.Model(&team.Team{}).Pluck("id", &knownIDs).Error; err != nil {
			return err
		}

		fixtures, err := ValidateFixtures(proposed, knownIDs)
		if err != nil {
			return err
		}

		repo := w.games.WithTx(tx)
		for _, f := range fixtures {
			g := &game.Game{
				GameDate:   f.GameDate,
				Team1ID:    f.Team1ID,
				Team2ID:    f.Team2ID,
				ScoreTeam1: f.ScoreTeam1,
				ScoreTeam2: f.ScoreTeam2,
			}
			if err := repo.Insert(g); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Name: name, GamesCreated: created}, nil
}
