package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
)

const requestIDKey = "request_id"

var (
	// httpRequestsTotal counts requests by route and status
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "howmanytries_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})

	// httpRequestDuration tracks request latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "howmanytries_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// requestIDMiddleware reuses the caller's X-Request-ID or generates one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}

func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
			"request_id", c.GetString(requestIDKey))
	}
}

// rateLimitMiddleware rejects requests once limiter is exhausted. A nil
// limiter disables limiting.
func rateLimitMiddleware(limiter *rate.Limiter, lang func(*gin.Context) language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: i18n.Translate(lang(c), i18n.MsgRateLimited),
				Code:  models.ErrRateLimited,
			})
			return
		}
		c.Next()
	}
}
