package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ScoreAggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "score_aggregation_duration_s",
	Help: "Duration of a full leaderboard aggregation pass",
	Buckets: []float64{
		0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10,
	},
})

var FinalizeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "results_finalized_total",
	Help: "Number of competition finalization runs by outcome",
}, []string{"outcome"})

var LeaderboardConnectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "leaderboard_websocket_connections",
	Help: "Number of open leaderboard websocket connections",
})

var LeaderboardUpdatesPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: "leaderboard_updates_published_total",
	Help: "Number of leaderboard diffs published to subscribers",
})
