package game

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/pkg/apperrors"
	"github.com/odovbush/sportsdb/pkg/query"
	"github.com/odovbush/sportsdb/pkg/txn"
)

// Queries declares the list defaults and sortable columns for games.
var Queries = query.Definition{
	DefaultLimit:     10,
	DefaultSortBy:    "game_date",
	DefaultSortOrder: "desc",
	SortColumns: map[string]string{
		"id":          "id",
		"game_date":   "game_date",
		"score_team1": "score_team1",
		"score_team2": "score_team2",
	},
}

// CreateInput carries the already-parsed fields for a new game. Nil scores
// default to 0.
type CreateInput struct {
	GameDate time.Time
	Team1ID  uint
	Team2ID  uint
	Score1   *int
	Score2   *int
}

// UpdateInput carries a partial update; nil fields keep their prior value.
type UpdateInput struct {
	GameDate *time.Time
	Team1ID  *uint
	Team2ID  *uint
	Score1   *int
	Score2   *int
}

// Filter holds the declared list filter fields for games. A game matches a
// score bound when either team's score satisfies it.
type Filter struct {
	Team1ID  *uint
	Team2ID  *uint
	DateFrom *time.Time
	DateTo   *time.Time
	MinScore *int
	MaxScore *int
}

// GameRepository defines the game data operations.
type GameRepository interface {
	List(f Filter, opts query.Options) ([]Game, query.Pagination, error)
	GetByID(id uint) (*Game, error)
	Create(in CreateInput) (*Game, error)
	Update(id uint, in UpdateInput) (*Game, error)
	Delete(id uint) error

	// Insert writes a game without re-checking team existence. It is the
	// batch path: the caller has already proven the invariants inside the
	// same transaction this repository is bound to.
	Insert(g *Game) error
	// WithTx returns a repository bound to an open transaction.
	WithTx(tx *gorm.DB) GameRepository
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new instance of GameRepository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) WithTx(tx *gorm.DB) GameRepository {
	return &gameRepository{db: tx}
}

func (r *gameRepository) List(f Filter, opts query.Options) ([]Game, query.Pagination, error) {
	q := r.db.Model(&Game{})

	var filters []query.Filter
	if f.Team1ID != nil {
		filters = append(filters, query.Filter{Column: "team1_id", Kind: query.Equals, Value: *f.Team1ID})
	}
	if f.Team2ID != nil {
		filters = append(filters, query.Filter{Column: "team2_id", Kind: query.Equals, Value: *f.Team2ID})
	}
	if f.DateFrom != nil {
		filters = append(filters, query.Filter{Column: "game_date", Kind: query.GreaterOrEqual, Value: *f.DateFrom})
	}
	if f.DateTo != nil {
		filters = append(filters, query.Filter{Column: "game_date", Kind: query.LessOrEqual, Value: *f.DateTo})
	}
	q = query.Apply(q, filters)

	// Score bounds match when at least one of the two score columns
	// satisfies them, so each bound is an OR group across both columns.
	if f.MinScore != nil {
		q = query.Any(q, []query.Filter{
			{Column: "score_team1", Kind: query.GreaterOrEqual, Value: *f.MinScore},
			{Column: "score_team2", Kind: query.GreaterOrEqual, Value: *f.MinScore},
		})
	}
	if f.MaxScore != nil {
		q = query.Any(q, []query.Filter{
			{Column: "score_team1", Kind: query.LessOrEqual, Value: *f.MaxScore},
			{Column: "score_team2", Kind: query.LessOrEqual, Value: *f.MaxScore},
		})
	}

	var games []Game
	page, err := query.Paginate(q.Preload("Team1").Preload("Team2"), Queries, opts, &games)
	if err != nil {
		return nil, query.Pagination{}, apperrors.WrapStore("game list", err)
	}
	return games, page, nil
}

// GetByID returns (nil, nil) when the game does not exist.
func (r *gameRepository) GetByID(id uint) (*Game, error) {
	var g Game
	err := r.db.Preload("Team1").Preload("Team2").First(&g, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.WrapStore("game get", err)
	}
	return &g, nil
}

func (r *gameRepository) Create(in CreateInput) (*Game, error) {
	if in.Team1ID == in.Team2ID {
		return nil, apperrors.NewValidation("team cannot play against itself")
	}
	score1, err := normalizeScore(in.Score1)
	if err != nil {
		return nil, err
	}
	score2, err := normalizeScore(in.Score2)
	if err != nil {
		return nil, err
	}

	g := &Game{
		GameDate:   in.GameDate,
		Team1ID:    in.Team1ID,
		Team2ID:    in.Team2ID,
		ScoreTeam1: score1,
		ScoreTeam2: score2,
	}

	err = txn.WithTimeout(r.db, "game create", func(tx *gorm.DB) error {
		if err := teamsExist(tx, in.Team1ID, in.Team2ID); err != nil {
			return err
		}
		return tx.Create(g).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(g.ID)
}

func (r *gameRepository) Update(id uint, in UpdateInput) (*Game, error) {
	err := txn.WithTimeout(r.db, "game update", func(tx *gorm.DB) error {
		var current Game
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("game")
			}
			return err
		}

		// Effective team ids are the new values where supplied, otherwise
		// the stored ones; the self-play invariant holds for the result.
		team1 := current.Team1ID
		if in.Team1ID != nil {
			team1 = *in.Team1ID
		}
		team2 := current.Team2ID
		if in.Team2ID != nil {
			team2 = *in.Team2ID
		}
		if team1 == team2 {
			return apperrors.NewValidation("team cannot play against itself")
		}
		if in.Team1ID != nil || in.Team2ID != nil {
			if err := teamsExist(tx, team1, team2); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if in.GameDate != nil {
			updates["game_date"] = *in.GameDate
		}
		if in.Team1ID != nil {
			updates["team1_id"] = team1
		}
		if in.Team2ID != nil {
			updates["team2_id"] = team2
		}
		if in.Score1 != nil {
			score, err := normalizeScore(in.Score1)
			if err != nil {
				return err
			}
			updates["score_team1"] = score
		}
		if in.Score2 != nil {
			score, err := normalizeScore(in.Score2)
			if err != nil {
				return err
			}
			updates["score_team2"] = score
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&Game{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *gameRepository) Delete(id uint) error {
	return txn.WithTimeout(r.db, "game delete", func(tx *gorm.DB) error {
		var g Game
		if err := tx.First(&g, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("game")
			}
			return err
		}
		return tx.Delete(&Game{}, id).Error
	})
}

func (r *gameRepository) Insert(g *Game) error {
	return apperrors.WrapStore("game insert", r.db.Create(g).Error)
}

func teamsExist(tx *gorm.DB, ids ...uint) error {
	var count int64
	if err := tx.Model(&team.Team{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return &apperrors.NotFoundError{Resource: "team", Message: "one or both teams do not exist"}
	}
	return nil
}

func normalizeScore(s *int) (int, error) {
	if s == nil {
		return 0, nil
	}
	if *s < 0 {
		return 0, apperrors.NewValidation("score must be a non-negative integer")
	}
	return *s, nil
}
