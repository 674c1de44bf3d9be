package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware allows the configured origins. Entries may hold one "*"
// wildcard, e.g. "https://*.vercel.app". A bare "*" allows every origin and
// never sends credentials.
func corsMiddleware(origins []string, credentials bool) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	cfg := cors.Config{
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept-Language", "X-Request-ID"},
		ExposeHeaders:             []string{"X-Request-ID"},
		MaxAge:                    10 * time.Minute,
		OptionsResponseStatusCode: http.StatusNoContent,
	}

	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		if credentials {
			slog.Warn("cors: credentials disabled because all origins are allowed")
		}
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowWildcard = true
		cfg.AllowCredentials = credentials
	}

	return cors.New(cfg)
}
