package controller

import (
	"fairway/app_error"
	"fairway/scoring"
	"fairway/service"
	"fairway/utils"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamController struct {
	teamService *service.TeamService
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		teamService: service.NewTeamService(db),
	}
}

func setupTeamController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewTeamController(db)
	return []RouteInfo{
		{Method: "GET", Path: "competitions/:competition_id/teams/standings", HandlerFunc: cache.CachePage(cacheStore, 10*time.Second, e.getTeamStandingsHandler())},
	}
}

type TeamStandingResponse struct {
	TeamId             int                `json:"team_id"`
	Name               string             `json:"name"`
	Status             scoring.TeamStatus `json:"status"`
	TotalShots         int                `json:"total_shots"`
	TotalRelativeScore int                `json:"total_relative_score"`
	HolesPlayed        int                `json:"holes_played"`
	Position           int                `json:"position"`
	Points             int                `json:"team_points"`
}

func toTeamStandingResponse(standing *scoring.TeamStanding) *TeamStandingResponse {
	return &TeamStandingResponse{
		TeamId:             standing.TeamId,
		Name:               standing.Name,
		Status:             standing.Status,
		TotalShots:         standing.TotalShots,
		TotalRelativeScore: standing.TotalRelativeScore,
		HolesPlayed:        standing.HolesPlayed,
		Position:           standing.Position,
		Points:             standing.Points,
	}
}

func (e *TeamController) getTeamStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		standings, err := e.teamService.GetTeamStandings(competitionId, time.Now())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Competition not found"})
			} else {
				app_error.WithHTTPStatus(c, err, app_error.HTTPStatus(err, 500))
			}
			return
		}
		c.JSON(200, utils.Map(standings, toTeamStandingResponse))
	}
}
