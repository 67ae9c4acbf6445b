package controller

import (
	"fairway/app_error"
	"fairway/repository"
	"fairway/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ParticipantController struct {
	participantService *service.ParticipantService
}

func NewParticipantController(db *gorm.DB) *ParticipantController {
	return &ParticipantController{
		participantService: service.NewParticipantService(db),
	}
}

func setupParticipantController(db *gorm.DB) []RouteInfo {
	e := NewParticipantController(db)
	baseUrl := "participants/:participant_id"
	routes := []RouteInfo{
		{Method: "PUT", Path: "/holes/:hole", HandlerFunc: e.recordHoleScoreHandler()},
		{Method: "PUT", Path: "/manual-score", HandlerFunc: e.recordManualScoreHandler()},
		{Method: "PUT", Path: "/locked", HandlerFunc: e.setLockedHandler()},
		{Method: "PUT", Path: "/disqualified", HandlerFunc: e.setDisqualifiedHandler()},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	routes = append(routes, RouteInfo{Method: "GET", Path: "competitions/:competition_id/participants", HandlerFunc: e.getParticipantsHandler()})
	return routes
}

func (e *ParticipantController) getParticipantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		participants, err := e.participantService.GetParticipantsForCompetition(competitionId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, participants)
	}
}

func getParticipantId(c *gin.Context) (int, bool) {
	participantId, err := strconv.Atoi(c.Param("participant_id"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return 0, false
	}
	return participantId, true
}

type HoleScoreBody struct {
	Strokes       int      `json:"strokes" binding:"required"`
	HandicapIndex *float64 `json:"handicap_index"`
}

type ManualScoreBody struct {
	Total         *int     `json:"total"`
	Out           *int     `json:"out"`
	In            *int     `json:"in"`
	HandicapIndex *float64 `json:"handicap_index"`
}

type FlagBody struct {
	Value bool `json:"value"`
}

func respondParticipant(c *gin.Context, participant *repository.Participant, err error) {
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"error": "Participant not found"})
		} else {
			app_error.WithHTTPStatus(c, err, app_error.HTTPStatus(err, 400))
		}
		return
	}
	c.JSON(200, participant)
}

func (e *ParticipantController) recordHoleScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, ok := getParticipantId(c)
		if !ok {
			return
		}
		hole, err := strconv.Atoi(c.Param("hole"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var body HoleScoreBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.RecordHoleScore(participantId, hole, body.Strokes, body.HandicapIndex)
		respondParticipant(c, participant, err)
	}
}

func (e *ParticipantController) recordManualScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, ok := getParticipantId(c)
		if !ok {
			return
		}
		var body ManualScoreBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.RecordManualScore(participantId, body.Total, body.Out, body.In, body.HandicapIndex)
		respondParticipant(c, participant, err)
	}
}

func (e *ParticipantController) setLockedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, ok := getParticipantId(c)
		if !ok {
			return
		}
		var body FlagBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.SetLocked(participantId, body.Value)
		respondParticipant(c, participant, err)
	}
}

func (e *ParticipantController) setDisqualifiedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantId, ok := getParticipantId(c)
		if !ok {
			return
		}
		var body FlagBody
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participant, err := e.participantService.SetDisqualified(participantId, body.Value)
		respondParticipant(c, participant, err)
	}
}
