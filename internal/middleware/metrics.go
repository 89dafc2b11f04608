package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aerohub_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedCandidatesFetched observes candidate-set sizes per browse scope, to
	// surface when the fetch cap starts truncating results.
	FeedCandidatesFetched = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aerohub_feed_candidates_fetched",
		Help:    "Number of candidate posts fetched per feed query",
		Buckets: []float64{10, 50, 100, 200, 300, 400, 500},
	}, []string{"scope"})

	// EngagementToggles counts like/favorite toggles by kind and direction.
	EngagementToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aerohub_engagement_toggles_total",
		Help: "Total number of like/favorite toggles",
	}, []string{"kind", "direction"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wires the Prometheus middleware into the request chain.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
