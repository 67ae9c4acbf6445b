package controller

import (
	"context"
	"encoding/json"
	"fairway/app_error"
	"fairway/config"
	"fairway/metrics"
	"fairway/service"
	"fairway/utils"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	leaderboardService *service.LeaderboardService
	mu                 sync.Mutex
	connections        map[int]map[*websocket.Conn]bool
	writers            map[int]*kafka.Writer
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	controller := &LeaderboardController{
		leaderboardService: service.NewLeaderboardService(db),
		connections:        make(map[int]map[*websocket.Conn]bool),
		writers:            make(map[int]*kafka.Writer),
	}
	controller.StartLeaderboardUpdater()
	return controller
}

func setupLeaderboardController(db *gorm.DB, cacheStore *persistence.InMemoryStore) []RouteInfo {
	e := NewLeaderboardController(db)
	baseUrl := "competitions/:competition_id/leaderboard"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, 10*time.Second, e.getLeaderboardHandler())},
		{Method: "GET", Path: "/ws", HandlerFunc: e.WebSocketHandler},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

func getCompetitionId(c *gin.Context) (int, bool) {
	competitionId, err := strconv.Atoi(c.Param("competition_id"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return 0, false
	}
	return competitionId, true
}

func (e *LeaderboardController) getLeaderboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := getCompetitionId(c)
		if !ok {
			return
		}
		entries, err := e.leaderboardService.GetLeaderboard(competitionId, time.Now())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Competition not found"})
			} else {
				app_error.WithHTTPStatus(c, err, app_error.HTTPStatus(err, 500))
			}
			return
		}
		c.JSON(200, entries)
	}
}

// WebSocketHandler streams leaderboard diffs to the client. On connect the
// full current board is sent once, then only changes.
func (e *LeaderboardController) WebSocketHandler(c *gin.Context) {
	competitionId, ok := getCompetitionId(c)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	if _, ok := e.leaderboardService.LatestBoards[competitionId]; !ok {
		if _, err := e.leaderboardService.GetNewDiff(competitionId); err != nil {
			log.Printf("Initial leaderboard computation failed for competition %d: %v", competitionId, err)
		}
	}
	serialized, err := json.Marshal(e.leaderboardService.LatestBoards[competitionId])
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, serialized); err != nil {
		return
	}

	e.mu.Lock()
	if _, ok := e.connections[competitionId]; !ok {
		e.connections[competitionId] = make(map[*websocket.Conn]bool)
	}
	e.connections[competitionId][conn] = true
	metrics.LeaderboardConnectionsGauge.Inc()
	e.mu.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			e.mu.Lock()
			delete(e.connections[competitionId], conn)
			if len(e.connections[competitionId]) == 0 {
				delete(e.connections, competitionId)
			}
			metrics.LeaderboardConnectionsGauge.Dec()
			e.mu.Unlock()
			return
		}
	}
}

// StartLeaderboardUpdater recomputes boards for competitions with active
// websocket connections and fans the diffs out to subscribers and kafka.
func (e *LeaderboardController) StartLeaderboardUpdater() {
	go func() {
		for {
			e.mu.Lock()
			competitionIds := utils.Keys(e.connections)
			e.mu.Unlock()
			for _, competitionId := range competitionIds {
				diff, err := e.leaderboardService.GetNewDiff(competitionId)
				if err != nil {
					continue
				}
				serializedDiff, err := json.Marshal(diff)
				if err != nil {
					log.Printf("Failed to serialize leaderboard diff: %v", err)
					continue
				}
				e.mu.Lock()
				for conn := range e.connections[competitionId] {
					if err := conn.WriteMessage(websocket.TextMessage, serializedDiff); err != nil {
						conn.Close()
						delete(e.connections[competitionId], conn)
						metrics.LeaderboardConnectionsGauge.Dec()
					}
				}
				e.mu.Unlock()
				e.publishDiff(competitionId, serializedDiff)
				metrics.LeaderboardUpdatesPublished.Inc()
			}
			time.Sleep(5 * time.Second)
		}
	}()
}

func (e *LeaderboardController) publishDiff(competitionId int, serializedDiff []byte) {
	if config.Env().KafkaBroker == "" {
		return
	}
	writer, ok := e.writers[competitionId]
	if !ok {
		var err error
		writer, err = config.GetLeaderboardWriter(competitionId)
		if err != nil {
			log.Printf("Failed to create leaderboard writer for competition %d: %v", competitionId, err)
			return
		}
		e.writers[competitionId] = writer
	}
	err := writer.WriteMessages(context.Background(), kafka.Message{Value: serializedDiff})
	if err != nil {
		log.Printf("Failed to publish leaderboard diff for competition %d: %v", competitionId, err)
	}
}
