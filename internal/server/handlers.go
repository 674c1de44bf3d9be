package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
)

// HandleSimulate handles POST /api/simulate.
//
// Request Body:
//
//	SimulateRequest
//
// Response:
//
//	200 OK: models.SimulationReport
//	400 Bad Request: validation error or unparseable body
//	500 Internal Server Error: simulation failure
func (s *Server) HandleSimulate(c *gin.Context) {
	requestID := c.GetString(requestIDKey)
	logger := slog.With("request_id", requestID, "handler", "HandleSimulate")
	lang := s.language(c)

	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: i18n.Translate(lang, i18n.MsgInvalidBody),
			Code:  models.ErrInvalidRequest,
		})
		return
	}

	// A missing successRate is falsy, exactly like an explicit 0.
	var successRate float64
	if req.SuccessRate != nil {
		successRate = *req.SuccessRate
	}

	logger.Info("starting simulations",
		"success_rate", successRate,
		"max_attempts", req.MaxAttempts,
		"trials", s.sim.Options().TrialCount)

	report, err := s.sim.Simulate(c.Request.Context(), successRate, req.MaxAttempts)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			logger.Warn("validation failed", "field", ve.Field, "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: i18n.Translate(lang, ve.Message, ve.Args...),
				Code:  ve.Type(),
			})
			return
		}

		logger.Error("simulation failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: i18n.Translate(lang, i18n.MsgInternal),
			Code:  models.ErrInternalError,
		})
		return
	}

	logger.Info("simulations completed",
		"execution_time_ms", report.ExecutionTimeMs,
		"average_attempts", report.AverageAttempts,
		"successes", report.TotalSuccesses,
		"failures", report.TotalFailures)

	c.JSON(http.StatusOK, report)
}

// HandleHealth handles GET /api/health.
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "OK",
		Message:     i18n.Translate(s.language(c), i18n.MsgServerUp),
		Timestamp:   time.Now().UTC(),
		Uptime:      int64(time.Since(s.startedAt).Seconds()),
		Environment: s.cfg.Environment,
		Version:     s.version,
	})
}

// HandleInfo handles GET /api and GET /.
func (s *Server) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Message:     APIName,
		Version:     s.version,
		Description: i18n.Translate(s.language(c), i18n.MsgAPIDescription),
		Environment: s.cfg.Environment,
		Endpoints: map[string]string{
			"POST /api/simulate": "Simulate attempts for a success percentage",
			"GET /api/health":    "Server health",
			"GET /api":           "API information",
			"GET /metrics":       "Prometheus metrics",
		},
		Parameters: map[string]string{
			"successRate": "Success percentage (0-100)",
			"maxAttempts": "Maximum attempts (optional, default: 1000)",
		},
		Timestamp: time.Now().UTC(),
	})
}

// HandleNotFound answers unknown routes.
func (s *Server) HandleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Error:      i18n.Translate(s.language(c), i18n.MsgNotFound),
		StatusCode: http.StatusNotFound,
		URL:        c.Request.URL.String(),
		Method:     c.Request.Method,
		Timestamp:  time.Now().UTC(),
	})
}
