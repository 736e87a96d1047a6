package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discord_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	wsActiveConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discord_realtime_active_connections",
			Help: "Number of active realtime connections.",
		},
		[]string{"kind"},
	)
	realtimeEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_realtime_events_total",
			Help: "Total number of events fanned out to realtime clients.",
		},
		[]string{"kind", "event"},
	)
	messageMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_message_mutations_total",
			Help: "Total number of message creations, edits and deletions.",
		},
		[]string{"scope", "action"},
	)
	mediaTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_media_tokens_total",
			Help: "Total number of media room token requests by result.",
		},
		[]string{"result"},
	)
	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
		[]string{"route"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "discord_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		wsActiveConnections,
		realtimeEventsTotal,
		messageMutationsTotal,
		mediaTokensTotal,
		rateLimitedTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func IncRealtimeActive(kind string) {
	wsActiveConnections.WithLabelValues(kind).Inc()
}

func DecRealtimeActive(kind string) {
	wsActiveConnections.WithLabelValues(kind).Dec()
}

func IncRealtimeEvent(kind, event string) {
	realtimeEventsTotal.WithLabelValues(kind, event).Inc()
}

func IncMessageMutation(scope, action string) {
	messageMutationsTotal.WithLabelValues(scope, action).Inc()
}

func IncMediaToken(result string) {
	mediaTokensTotal.WithLabelValues(result).Inc()
}

func IncRateLimited(route string) {
	rateLimitedTotal.WithLabelValues(route).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
