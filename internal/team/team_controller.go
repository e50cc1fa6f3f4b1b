package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/odovbush/sportsdb/pkg/query"
	"github.com/odovbush/sportsdb/pkg/responses"
	"github.com/odovbush/sportsdb/pkg/validator"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	City        *string `json:"city"`
	FoundedYear *int    `json:"founded_year" binding:"omitempty,gte=0"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	FoundedYear *int    `json:"founded_year" binding:"omitempty,gte=0"`
}

// --- Team Handlers ---

// GetAllTeams godoc
// @Summary List teams
// @Description Returns teams filtered by name/city substring and founded-year range, sorted and paginated.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param name query string false "Name substring, case-insensitive"
// @Param city query string false "City substring, case-insensitive"
// @Param founded_year_from query int false "Founded year lower bound"
// @Param founded_year_to query int false "Founded year upper bound"
// @Param sort_by query string false "Sort field (id, name, city, founded_year)"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Failure 500 {object} responses.ErrorResponse
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	filter := Filter{
		Name:        c.Query("name"),
		City:        c.Query("city"),
		FoundedFrom: queryInt(c, "founded_year_from"),
		FoundedTo:   queryInt(c, "founded_year_to"),
	}

	teams, page, err := tc.repo.List(filter, listOptions(c))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendPaginated(c, "Teams retrieved successfully", teams, page)
}

// GetTeamByID godoc
// @Summary Get a team by id
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := tc.repo.GetByID(id)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", t)
}

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team. The trimmed name must be unique across all teams.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Name already taken"
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendFieldErrors(c, "Invalid request payload", validator.ParseError(err))
		return
	}

	t, err := tc.repo.Create(CreateInput{
		Name:        req.Name,
		City:        req.City,
		FoundedYear: req.FoundedYear,
	})
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Applies a partial update; omitted fields keep their prior value.
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Name already taken"
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendFieldErrors(c, "Invalid request payload", validator.ParseError(err))
		return
	}

	t, err := tc.repo.Update(id, UpdateInput{
		Name:        req.Name,
		City:        req.City,
		FoundedYear: req.FoundedYear,
	})
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", t)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Deletes a team unless games still reference it.
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Team has associated games"
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := tc.repo.Delete(id); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid team id")
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
