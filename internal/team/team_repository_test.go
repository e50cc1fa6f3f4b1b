package team_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/odovbush/sportsdb/internal/game"
	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/pkg/apperrors"
	"github.com/odovbush/sportsdb/pkg/query"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&team.Team{}, &game.Game{}))
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestCreateTeam(t *testing.T) {
	repo := team.NewTeamRepository(newTestDB(t))

	t.Run("trims name and city", func(t *testing.T) {
		created, err := repo.Create(team.CreateInput{
			Name: "  Dynamo  ",
			City: strPtr("  Kyiv  "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dynamo", created.Name)
		require.NotNil(t, created.City)
		assert.Equal(t, "Kyiv", *created.City)
		assert.NotZero(t, created.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := repo.Create(team.CreateInput{Name: "   "})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects duplicate trimmed name", func(t *testing.T) {
		_, err := repo.Create(team.CreateInput{Name: " Dynamo "})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("name uniqueness is case-sensitive", func(t *testing.T) {
		_, err := repo.Create(team.CreateInput{Name: "dynamo"})
		assert.NoError(t, err)
	})

	t.Run("blank city becomes null", func(t *testing.T) {
		created, err := repo.Create(team.CreateInput{Name: "Shakhtar", City: strPtr("   ")})
		require.NoError(t, err)
		assert.Nil(t, created.City)
	})
}

func TestGetTeamByID(t *testing.T) {
	repo := team.NewTeamRepository(newTestDB(t))

	created, err := repo.Create(team.CreateInput{Name: "Karpaty"})
	require.NoError(t, err)

	t.Run("returns the team", func(t *testing.T) {
		found, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Karpaty", found.Name)
	})

	t.Run("absence is not an error", func(t *testing.T) {
		found, err := repo.GetByID(9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUpdateTeam(t *testing.T) {
	repo := team.NewTeamRepository(newTestDB(t))

	first, err := repo.Create(team.CreateInput{Name: "Dnipro", City: strPtr("Dnipro"), FoundedYear: intPtr(1918)})
	require.NoError(t, err)
	second, err := repo.Create(team.CreateInput{Name: "Vorskla"})
	require.NoError(t, err)

	t.Run("missing team", func(t *testing.T) {
		_, err := repo.Update(9999, team.UpdateInput{Name: strPtr("Nobody")})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("rename collision", func(t *testing.T) {
		_, err := repo.Update(second.ID, team.UpdateInput{Name: strPtr("Dnipro")})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("rename to own name is allowed", func(t *testing.T) {
		updated, err := repo.Update(first.ID, team.UpdateInput{Name: strPtr(" Dnipro ")})
		require.NoError(t, err)
		assert.Equal(t, "Dnipro", updated.Name)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		updated, err := repo.Update(first.ID, team.UpdateInput{FoundedYear: intPtr(1925)})
		require.NoError(t, err)
		assert.Equal(t, "Dnipro", updated.Name)
		require.NotNil(t, updated.City)
		assert.Equal(t, "Dnipro", *updated.City)
		require.NotNil(t, updated.FoundedYear)
		assert.Equal(t, 1925, *updated.FoundedYear)
	})

	t.Run("blank city clears the value", func(t *testing.T) {
		updated, err := repo.Update(first.ID, team.UpdateInput{City: strPtr("  ")})
		require.NoError(t, err)
		assert.Nil(t, updated.City)
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		_, err := repo.Update(first.ID, team.UpdateInput{Name: strPtr("  ")})
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestDeleteTeam(t *testing.T) {
	db := newTestDB(t)
	repo := team.NewTeamRepository(db)
	games := game.NewGameRepository(db)

	home, err := repo.Create(team.CreateInput{Name: "Home"})
	require.NoError(t, err)
	away, err := repo.Create(team.CreateInput{Name: "Away"})
	require.NoError(t, err)
	idle, err := repo.Create(team.CreateInput{Name: "Idle"})
	require.NoError(t, err)

	_, err = games.Create(game.CreateInput{GameDate: date(t, "2024-03-01"), Team1ID: home.ID, Team2ID: away.ID})
	require.NoError(t, err)
	_, err = games.Create(game.CreateInput{GameDate: date(t, "2024-03-08"), Team1ID: away.ID, Team2ID: home.ID})
	require.NoError(t, err)

	t.Run("missing team", func(t *testing.T) {
		err := repo.Delete(9999)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("referenced team is protected, either side counts", func(t *testing.T) {
		err := repo.Delete(home.ID)
		require.Error(t, err)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.EqualValues(t, 2, conflict.References)
		assert.Contains(t, conflict.Message, "2 associated games")

		// nothing was deleted
		found, err := repo.GetByID(home.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("unreferenced team deletes", func(t *testing.T) {
		require.NoError(t, repo.Delete(idle.ID))
		found, err := repo.GetByID(idle.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestListTeams(t *testing.T) {
	repo := team.NewTeamRepository(newTestDB(t))

	seed := []team.CreateInput{
		{Name: "FC Barcelona", City: strPtr("Barcelona"), FoundedYear: intPtr(1899)},
		{Name: "Real Madrid", City: strPtr("Madrid"), FoundedYear: intPtr(1902)},
		{Name: "Atletico Madrid", City: strPtr("Madrid"), FoundedYear: intPtr(1903)},
		{Name: "Manchester United", City: strPtr("Manchester"), FoundedYear: intPtr(1878)},
	}
	for _, in := range seed {
		_, err := repo.Create(in)
		require.NoError(t, err)
	}

	t.Run("default sort is name ascending", func(t *testing.T) {
		teams, page, err := repo.List(team.Filter{}, query.Options{})
		require.NoError(t, err)
		require.Len(t, teams, 4)
		assert.Equal(t, "Atletico Madrid", teams[0].Name)
		assert.EqualValues(t, 4, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("name filter is case-insensitive substring", func(t *testing.T) {
		teams, _, err := repo.List(team.Filter{Name: "madrid"}, query.Options{})
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("city filter", func(t *testing.T) {
		teams, _, err := repo.List(team.Filter{City: "manchester"}, query.Options{})
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, "Manchester United", teams[0].Name)
	})

	t.Run("founded year range is inclusive", func(t *testing.T) {
		teams, _, err := repo.List(team.Filter{FoundedFrom: intPtr(1899), FoundedTo: intPtr(1902)}, query.Options{})
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("unknown sort field falls back to default", func(t *testing.T) {
		teams, _, err := repo.List(team.Filter{}, query.Options{SortBy: "drop table", SortOrder: "bogus"})
		require.NoError(t, err)
		require.Len(t, teams, 4)
		assert.Equal(t, "Atletico Madrid", teams[0].Name)
	})
}
