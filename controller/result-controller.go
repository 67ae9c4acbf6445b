package controller

import (
	"errors"
	"fairway/repository"
	"fairway/service"
	"fairway/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResultController struct {
	resultService *service.ResultService
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{
		resultService: service.NewResultService(db),
	}
}

func setupResultController(db *gorm.DB) []RouteInfo {
	e := NewResultController(db)
	baseUrl := "competitions/:competition_id/results"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getResultsHandler()},
		{Method: "POST", Path: "/finalize", HandlerFunc: e.finalizeHandler()},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type ResultResponse struct {
	ParticipantId int                    `json:"participant_id"`
	PlayerId      int                    `json:"player_id"`
	ScoringType   repository.ScoringType `json:"scoring_type"`
	Position      int                    `json:"position"`
	Points        int                    `json:"points"`
	GrossScore    int                    `json:"gross_score"`
	NetScore      *int                   `json:"net_score,omitempty"`
	RelativeToPar int                    `json:"relative_to_par"`
}

func toResultResponse(result *repository.Result) *ResultResponse {
	return &ResultResponse{
		ParticipantId: result.ParticipantId,
		PlayerId:      result.PlayerId,
		ScoringType:   result.ScoringType,
		Position:      result.Position,
		Points:        result.Points,
		GrossScore:    result.GrossScore,
		NetScore:      result.NetScore,
		RelativeToPar: result.RelativeToPar,
	}
}

func (e *ResultController) getResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		results, err := e.resultService.GetResultsForCompetition(competitionId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(results, toResultResponse))
	}
}

// finalizeHandler recomputes and persists the competition's results. It can
// be called again after score corrections; the previous rows are replaced
// atomically.
func (e *ResultController) finalizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		results, err := e.resultService.FinalizeCompetition(competitionId, time.Now())
		if err != nil {
			switch {
			case err == gorm.ErrRecordNotFound:
				c.JSON(404, gin.H{"error": "Competition not found"})
			case errors.Is(err, service.ErrNoCourse), errors.Is(err, service.ErrNoParticipants):
				c.JSON(404, gin.H{"error": err.Error()})
			default:
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, utils.Map(results, toResultResponse))
	}
}
