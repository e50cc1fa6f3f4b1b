package tournament_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/odovbush/sportsdb/internal/game"
	"github.com/odovbush/sportsdb/internal/team"
	"github.com/odovbush/sportsdb/internal/tournament"
	"github.com/odovbush/sportsdb/pkg/apperrors"
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

func newWriter(t *testing.T) (*tournament.Writer, *gorm.DB, []string) {
	t.Helper()
	db := newTestDB(t)
	teams := team.NewTeamRepository(db)

	ids := make([]string, 0, 4)
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		created, err := teams.Create(team.CreateInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, fmt.Sprint(created.ID))
	}
	return tournament.NewWriter(db, game.NewGameRepository(db)), db, ids
}

func countGames(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&game.Game{}).Count(&count).Error)
	return count
}

func TestCreateTournament(t *testing.T) {
	t.Run("creates every fixture", func(t *testing.T) {
		writer, db, ids := newWriter(t)

		result, err := writer.CreateTournament("Spring Cup", []tournament.ProposedFixture{
			{GameDate: "2024-04-01", Team1ID: ids[0], Team2ID: ids[1]},
			{GameDate: "2024-04-01", Team1ID: ids[2], Team2ID: ids[3]},
			{GameDate: "2024-04-08", Team1ID: ids[0], Team2ID: ids[2]},
		})
		require.NoError(t, err)
		assert.Equal(t, "Spring Cup", result.Name)
		assert.Equal(t, 3, result.GamesCreated)
		assert.EqualValues(t, 3, countGames(t, db))
	})

	t.Run("one unknown team discards the whole batch", func(t *testing.T) {
		writer, db, ids := newWriter(t)

		_, err := writer.CreateTournament("Doomed Cup", []tournament.ProposedFixture{
			{GameDate: "2024-04-01", Team1ID: ids[0], Team2ID: ids[1]},
			{GameDate: "2024-04-01", Team1ID: ids[2], Team2ID: ids[3]},
			{GameDate: "2024-04-08", Team1ID: ids[1], Team2ID: ids[2]},
			{GameDate: "2024-04-08", Team1ID: ids[0], Team2ID: "9999"},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.EqualValues(t, 0, countGames(t, db))
	})

	t.Run("duplicate fixture discards the whole batch", func(t *testing.T) {
		writer, db, ids := newWriter(t)

		_, err := writer.CreateTournament("Replayed Cup", []tournament.ProposedFixture{
			{GameDate: "2024-04-01", Team1ID: ids[0], Team2ID: ids[1]},
			{GameDate: "2024-04-01", Team1ID: ids[1], Team2ID: ids[0]},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.EqualValues(t, 0, countGames(t, db))
	})

	t.Run("existing games stay untouched on failure", func(t *testing.T) {
		writer, db, ids := newWriter(t)

		_, err := writer.CreateTournament("First Cup", []tournament.ProposedFixture{
			{GameDate: "2024-03-01", Team1ID: ids[0], Team2ID: ids[1]},
		})
		require.NoError(t, err)

		_, err = writer.CreateTournament("Second Cup", []tournament.ProposedFixture{
			{GameDate: "2024-03-08", Team1ID: ids[2], Team2ID: ids[3]},
			{GameDate: "2024-03-08", Team1ID: ids[2], Team2ID: ids[2]},
		})
		require.Error(t, err)
		assert.EqualValues(t, 1, countGames(t, db))
	})

	t.Run("requires a name", func(t *testing.T) {
		writer, _, ids := newWriter(t)

		_, err := writer.CreateTournament("  ", []tournament.ProposedFixture{
			{GameDate: "2024-03-01", Team1ID: ids[0], Team2ID: ids[1]},
		})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("requires at least one fixture", func(t *testing.T) {
		writer, _, _ := newWriter(t)

		_, err := writer.CreateTournament("Empty Cup", nil)
		assert.True(t, apperrors.IsValidation(err))
	})
}
