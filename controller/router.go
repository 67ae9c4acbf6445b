package controller

import (
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method      string
	Path        string
	HandlerFunc gin.HandlerFunc
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore *persistence.InMemoryStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupLeaderboardController(db, cacheStore)...)
	routes = append(routes, setupResultController(db)...)
	routes = append(routes, setupTeamController(db, cacheStore)...)
	routes = append(routes, setupTourController(db, cacheStore)...)
	routes = append(routes, setupParticipantController(db)...)
	routes = append(routes, setupCourseController(db)...)
	routes = append(routes, setupCompetitionController(db)...)
	for _, route := range routes {
		r.Handle(route.Method, "/api/"+route.Path, route.HandlerFunc)
	}
}
