package team

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/odovbush/sportsdb/pkg/apperrors"
	"github.com/odovbush/sportsdb/pkg/query"
	"github.com/odovbush/sportsdb/pkg/txn"
)

// Queries declares the list defaults and sortable columns for teams.
var Queries = query.Definition{
	DefaultLimit:     10,
	DefaultSortBy:    "name",
	DefaultSortOrder: "asc",
	SortColumns: map[string]string{
		"id":           "id",
		"name":         "name",
		"city":         "city",
		"founded_year": "founded_year",
	},
}

// CreateInput carries the already-parsed fields for a new team.
type CreateInput struct {
	Name        string
	City        *string
	FoundedYear *int
}

// UpdateInput carries a partial update; nil fields keep their prior value.
type UpdateInput struct {
	Name        *string
	City        *string
	FoundedYear *int
}

// Filter holds the declared list filter fields for teams.
type Filter struct {
	Name        string
	City        string
	FoundedFrom *int
	FoundedTo   *int
}

func (f Filter) filters() []query.Filter {
	var out []query.Filter
	if f.Name != "" {
		out = append(out, query.Filter{Column: "name", Kind: query.ContainsFold, Value: f.Name})
	}
	if f.City != "" {
		out = append(out, query.Filter{Column: "city", Kind: query.ContainsFold, Value: f.City})
	}
	if f.FoundedFrom != nil {
		out = append(out, query.Filter{Column: "founded_year", Kind: query.GreaterOrEqual, Value: *f.FoundedFrom})
	}
	if f.FoundedTo != nil {
		out = append(out, query.Filter{Column: "founded_year", Kind: query.LessOrEqual, Value: *f.FoundedTo})
	}
	return out
}

// TeamRepository defines the team data operations.
type TeamRepository interface {
	List(f Filter, opts query.Options) ([]Team, query.Pagination, error)
	GetByID(id uint) (*Team, error)
	Create(in CreateInput) (*Team, error)
	Update(id uint, in UpdateInput) (*Team, error)
	Delete(id uint) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) List(f Filter, opts query.Options) ([]Team, query.Pagination, error) {
	var teams []Team
	q := query.Apply(r.db.Model(&Team{}), f.filters())
	page, err := query.Paginate(q, Queries, opts, &teams)
	if err != nil {
		return nil, query.Pagination{}, apperrors.WrapStore("team list", err)
	}
	return teams, page, nil
}

// GetByID returns (nil, nil) when the team does not exist; absence is a
// first-class result, not an error.
func (r *teamRepository) GetByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.WrapStore("team get", err)
	}
	return &t, nil
}

func (r *teamRepository) Create(in CreateInput) (*Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidation("team name is required")
	}

	t := &Team{
		Name:        name,
		City:        trimOptional(in.City),
		FoundedYear: in.FoundedYear,
	}

	// The uniqueness check and the insert share one transaction so two
	// concurrent creates with the same name cannot both pass the check.
	err := txn.WithTimeout(r.db, "team create", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Team{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &apperrors.ConflictError{Message: "team with this name already exists"}
		}
		return tx.Create(t).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) Update(id uint, in UpdateInput) (*Team, error) {
	var updated Team
	err := txn.WithTimeout(r.db, "team update", func(tx *gorm.DB) error {
		var current Team
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("team")
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return apperrors.NewValidation("team name is required")
			}
			if name != current.Name {
				var count int64
				if err := tx.Model(&Team{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return &apperrors.ConflictError{Message: "team with this name already exists"}
				}
			}
			updates["name"] = name
		}
		if in.City != nil {
			if city := strings.TrimSpace(*in.City); city != "" {
				updates["city"] = city
			} else {
				updates["city"] = nil
			}
		}
		if in.FoundedYear != nil {
			updates["founded_year"] = *in.FoundedYear
		}

		if len(updates) > 0 {
			if err := tx.Model(&Team{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *teamRepository) Delete(id uint) error {
	return txn.WithTimeout(r.db, "team delete", func(tx *gorm.DB) error {
		var t Team
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("team")
			}
			return err
		}

		// Games reference teams on either side; a referenced team must not
		// be deleted. The count and the delete share the transaction.
		var refs int64
		if err := tx.Table("games").Where("team1_id = ? OR team2_id = ?", id, id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &apperrors.ConflictError{
				Message:    fmt.Sprintf("cannot delete team: it has %d associated games", refs),
				References: refs,
			}
		}
		return tx.Delete(&Team{}, id).Error
	})
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
