package controller

import (
	"fairway/service"
	"strconv"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TourController struct {
	tourService *service.TourService
}

func NewTourController(db *gorm.DB) *TourController {
	return &TourController{
		tourService: service.NewTourService(db),
	}
}

func setupTourController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewTourController(db)
	return []RouteInfo{
		{Method: "GET", Path: "tours/:tour_id/standings", HandlerFunc: cache.CachePage(cacheStore, 30*time.Second, e.getStandingsHandler())},
	}
}

func (e *TourController) getStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tourId, err := strconv.Atoi(c.Param("tour_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var categoryId *int
		if categoryParam := c.Query("category_id"); categoryParam != "" {
			category, err := strconv.Atoi(categoryParam)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			categoryId = &category
		}
		standings, err := e.tourService.GetStandings(tourId, categoryId, time.Now())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Tour not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, standings)
	}
}
