package tournament

import (
	"strconv"
	"time"

	"github.com/odovbush/sportsdb/pkg/apperrors"
)

// DateLayout is the wire format for fixture dates.
const DateLayout = "2006-01-02"

// ProposedFixture is one raw fixture as submitted in a tournament batch.
// Team ids arrive as strings and are normalized exactly once during
// validation; every later comparison works on the parsed values.
type ProposedFixture struct {
	GameDate string `json:"game_date" binding:"required"`
	Team1ID  string `json:"team1_id" binding:"required"`
	Team2ID  string `json:"team2_id" binding:"required"`
	Score1   *int   `json:"score_team1" binding:"omitempty,gte=0"`
	Score2   *int   `json:"score_team2" binding:"omitempty,gte=0"`
}

// Fixture is a validated, normalized fixture ready for insertion.
type Fixture struct {
	GameDate   time.Time
	Team1ID    uint
	Team2ID    uint
	ScoreTeam1 int
	ScoreTeam2 int
}

// ValidateFixtures checks a proposed batch against the known team id set and
// returns the normalized fixtures. It is pure: no store access, no writes.
//
// The duplicate check is a pairwise O(n²) scan over the batch. Tournament
// batches are tens of fixtures, not thousands, so the quadratic cost is a
// known and accepted limit.
func ValidateFixtures(proposed []ProposedFixture, knownTeamIDs []uint) ([]Fixture, error) {
	known := make(map[uint]struct{}, len(knownTeamIDs))
	for _, id := range knownTeamIDs {
		known[id] = struct{}{}
	}

	fixtures := make([]Fixture, 0, len(proposed))
	for _, p := range proposed {
		f, err := normalize(p)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}

	for _, f := range fixtures {
		if _, ok := known[f.Team1ID]; !ok {
			return nil, apperrors.NewValidation("some teams do not exist")
		}
		if _, ok := known[f.Team2ID]; !ok {
			return nil, apperrors.NewValidation("some teams do not exist")
		}
	}

	for _, f := range fixtures {
		if f.Team1ID == f.Team2ID {
			return nil, apperrors.NewValidation(
				"fixture on %s has identical teams (id %d)", f.GameDate.Format(DateLayout), f.Team1ID)
		}
	}

	// Two fixtures are duplicates when they share a date and the same pair
	// of teams, regardless of home/away order.
	for i := 0; i < len(fixtures); i++ {
		for j := i + 1; j < len(fixtures); j++ {
			if samePairing(fixtures[i], fixtures[j]) {
				return nil, apperrors.NewValidation(
					"duplicate fixture on %s between teams %d and %d",
					fixtures[i].GameDate.Format(DateLayout), fixtures[i].Team1ID, fixtures[i].Team2ID)
			}
		}
	}

	return fixtures, nil
}

func normalize(p ProposedFixture) (Fixture, error) {
	date, err := time.Parse(DateLayout, p.GameDate)
	if err != nil {
		return Fixture{}, apperrors.NewValidation("invalid game date %q, expected YYYY-MM-DD", p.GameDate)
	}
	team1, err := parseTeamID(p.Team1ID)
	if err != nil {
		return Fixture{}, err
	}
	team2, err := parseTeamID(p.Team2ID)
	if err != nil {
		return Fixture{}, err
	}
	return Fixture{
		GameDate:   date,
		Team1ID:    team1,
		Team2ID:    team2,
		ScoreTeam1: defaultScore(p.Score1),
		ScoreTeam2: defaultScore(p.Score2),
	}, nil
}

func parseTeamID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("invalid team id %q", raw)
	}
	return uint(id), nil
}

func defaultScore(s *int) int {
	if s == nil || *s < 0 {
		return 0
	}
	return *s
}

func samePairing(a, b Fixture) bool {
	if !a.GameDate.Equal(b.GameDate) {
		return false
	}
	return (a.Team1ID == b.Team1ID && a.Team2ID == b.Team2ID) ||
		(a.Team1ID == b.Team2ID && a.Team2ID == b.Team1ID)
}
