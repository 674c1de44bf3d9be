package server

import (
	"time"

	"github.com/spachava753/howmanytries/internal/models"
)

// APIName is the name reported by the info endpoints.
const APIName = "How Many Tries API"

// SimulateRequest is the body of POST /api/simulate. Pointers distinguish an
// omitted field from an explicit zero.
type SimulateRequest struct {
	SuccessRate *float64 `json:"successRate"`
	MaxAttempts *float64 `json:"maxAttempts"`
}

// ErrorResponse is returned for every non-2xx answer from the API.
type ErrorResponse struct {
	Error string           `json:"error"`
	Code  models.ErrorType `json:"code,omitempty"`
}

// NotFoundResponse is returned for unknown routes.
type NotFoundResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"statusCode"`
	URL        string    `json:"url"`
	Method     string    `json:"method"`
	Timestamp  time.Time `json:"timestamp"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      int64     `json:"uptime"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
}

// InfoResponse is returned by GET /api and GET /.
type InfoResponse struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Environment string            `json:"environment"`
	Endpoints   map[string]string `json:"endpoints"`
	Parameters  map[string]string `json:"parameters"`
	Timestamp   time.Time         `json:"timestamp"`
}
