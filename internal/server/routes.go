package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the API routes on router.
//
//	POST /api/simulate
//	GET  /api/health
//	GET  /api
//	GET  /
//	GET  /metrics
func RegisterRoutes(router *gin.Engine, s *Server) {
	api := router.Group("/api")
	api.POST("/simulate", rateLimitMiddleware(s.limiter, s.language), s.HandleSimulate)
	api.GET("/health", s.HandleHealth)
	api.GET("", s.HandleInfo)

	router.GET("/", s.HandleInfo)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
