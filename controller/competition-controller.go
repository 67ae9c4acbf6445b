package controller

import (
	"fairway/repository"
	"fairway/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompetitionController struct {
	competitionService *service.CompetitionService
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{
		competitionService: service.NewCompetitionService(db),
	}
}

func setupCompetitionController(db *gorm.DB) []RouteInfo {
	e := NewCompetitionController(db)
	return []RouteInfo{
		{Method: "GET", Path: "competitions/:competition_id", HandlerFunc: e.getCompetitionHandler()},
		{Method: "PUT", Path: "competitions", HandlerFunc: e.saveCompetitionHandler()},
	}
}

func (e *CompetitionController) getCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		competition, err := e.competitionService.GetCompetitionById(competitionId, "Course", "Tee", "CategoryTees.Tee", "Teams")
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Competition not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, competition)
	}
}

func (e *CompetitionController) saveCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var competition repository.Competition
		if err := c.BindJSON(&competition); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		saved, err := e.competitionService.SaveCompetition(&competition)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, saved)
	}
}
