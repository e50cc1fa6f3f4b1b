package game

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odovbush/sportsdb/pkg/query"
	"github.com/odovbush/sportsdb/pkg/responses"
	"github.com/odovbush/sportsdb/pkg/validator"
)

const dateLayout = "2006-01-02"

// GameController handles game-related HTTP requests.
type GameController struct {
	repo GameRepository
}

// NewGameController creates a new game controller.
func NewGameController(repo GameRepository) *GameController {
	return &GameController{repo: repo}
}

// --- DTOs for requests ---

type CreateGameRequest struct {
	GameDate string `json:"game_date" binding:"required"`
	Team1ID  uint   `json:"team1_id" binding:"required"`
	Team2ID  uint   `json:"team2_id" binding:"required"`
	Score1   *int   `json:"score_team1" binding:"omitempty,gte=0"`
	Score2   *int   `json:"score_team2" binding:"omitempty,gte=0"`
}

type UpdateGameRequest struct {
	GameDate *string `json:"game_date"`
	Team1ID  *uint   `json:"team1_id"`
	Team2ID  *uint   `json:"team2_id"`
	Score1   *int    `json:"score_team1" binding:"omitempty,gte=0"`
	Score2   *int    `json:"score_team2" binding:"omitempty,gte=0"`
}

// --- Game Handlers ---

// GetAllGames godoc
// @Summary List games
// @Description Returns games with their team summaries, filtered, sorted and paginated. A min/max score bound matches when either team's score satisfies it.
// @Tags Games
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param team1_id query int false "Home team id"
// @Param team2_id query int false "Away team id"
// @Param date_from query string false "Earliest game date (YYYY-MM-DD, inclusive)"
// @Param date_to query string false "Latest game date (YYYY-MM-DD, inclusive)"
// @Param min_score query int false "Score lower bound"
// @Param max_score query int false "Score upper bound"
// @Param sort_by query string false "Sort field (id, game_date, score_team1, score_team2)"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} responses.PaginatedResponse{data=[]Game}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /games [get]
func (gc *GameController) GetAllGames(c *gin.Context) {
	filter := Filter{
		Team1ID:  queryUint(c, "team1_id"),
		Team2ID:  queryUint(c, "team2_id"),
		MinScore: queryInt(c, "min_score"),
		MaxScore: queryInt(c, "max_score"),
	}

	var ok bool
	if filter.DateFrom, ok = queryDate(c, "date_from"); !ok {
		return
	}
	if filter.DateTo, ok = queryDate(c, "date_to"); !ok {
		return
	}

	games, page, err := gc.repo.List(filter, listOptions(c))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendPaginated(c, "Games retrieved successfully", games, page)
}

// GetGameByID godoc
// @Summary Get a game by id
// @Tags Games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} responses.SuccessResponse{data=Game}
// @Failure 404 {object} responses.ErrorResponse
// @Router /games/{id} [get]
func (gc *GameController) GetGameByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	g, err := gc.repo.GetByID(id)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if g == nil {
		responses.NotFound(c, "Game")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game retrieved successfully", g)
}

// CreateGame godoc
// @Summary Create a new game
// @Description Creates a game between two existing, distinct teams. Missing scores default to 0.
// @Tags Games
// @Accept json
// @Produce json
// @Param game body CreateGameRequest true "Game data"
// @Success 201 {object} responses.SuccessResponse{data=Game}
// @Failure 400 {object} responses.ErrorResponse "Self-play or malformed input"
// @Failure 404 {object} responses.ErrorResponse "Referenced team does not exist"
// @Router /games [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendFieldErrors(c, "Invalid request payload", validator.ParseError(err))
		return
	}

	date, err := time.Parse(dateLayout, req.GameDate)
	if err != nil {
		responses.BadRequest(c, "Invalid game_date, expected YYYY-MM-DD")
		return
	}

	g, err := gc.repo.Create(CreateInput{
		GameDate: date,
		Team1ID:  req.Team1ID,
		Team2ID:  req.Team2ID,
		Score1:   req.Score1,
		Score2:   req.Score2,
	})
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created successfully", g)
}

// UpdateGame godoc
// @Summary Update a game
// @Description Applies a partial update; the self-play and team-existence invariants are re-checked against the effective team ids.
// @Tags Games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param game body UpdateGameRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Game}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /games/{id} [put]
func (gc *GameController) UpdateGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendFieldErrors(c, "Invalid request payload", validator.ParseError(err))
		return
	}

	in := UpdateInput{
		Team1ID: req.Team1ID,
		Team2ID: req.Team2ID,
		Score1:  req.Score1,
		Score2:  req.Score2,
	}
	if req.GameDate != nil {
		date, err := time.Parse(dateLayout, *req.GameDate)
		if err != nil {
			responses.BadRequest(c, "Invalid game_date, expected YYYY-MM-DD")
			return
		}
		in.GameDate = &date
	}

	g, err := gc.repo.Update(id, in)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game updated successfully", g)
}

// DeleteGame godoc
// @Summary Delete a game
// @Tags Games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /games/{id} [delete]
func (gc *GameController) DeleteGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := gc.repo.Delete(id); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game deleted successfully", nil)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid game id")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := time.Parse(dateLayout, raw)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &v, true
}

func listOptions(c *gin.Context) query.Options {
	opts := query.Options{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if p := queryInt(c, "page"); p != nil {
		opts.Page = *p
	}
	if l := queryInt(c, "limit"); l != nil {
		opts.Limit = *l
	}
	return opts
}
