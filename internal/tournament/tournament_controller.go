package tournament

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odovbush/sportsdb/pkg/responses"
	"github.com/odovbush/sportsdb/pkg/validator"
)

// TournamentController handles tournament batch requests.
type TournamentController struct {
	writer *Writer
}

// NewTournamentController creates a new tournament controller.
func NewTournamentController(writer *Writer) *TournamentController {
	return &TournamentController{writer: writer}
}

type CreateTournamentRequest struct {
	Name  string            `json:"tournament_name" binding:"required"`
	Games []ProposedFixture `json:"games" binding:"required,min=1,dive"`
}

// CreateTournament godoc
// @Summary Create a tournament batch of games
// @Description Validates and inserts every fixture in one transaction. One invalid fixture anywhere in the batch discards the whole batch.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param tournament body CreateTournamentRequest true "Tournament data"
// @Success 201 {object} responses.SuccessResponse{data=Result}
// @Failure 400 {object} responses.ErrorResponse "Unknown team, self-play or duplicate fixture"
// @Failure 500 {object} responses.ErrorResponse
// @Router /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendFieldErrors(c, "Invalid request payload", validator.ParseError(err))
		return
	}

	result, err := tc.writer.CreateTournament(req.Name, req.Games)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tournament created successfully", result)
}
