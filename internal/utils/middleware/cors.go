package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows browser callers from origins. An empty list or "*" allows any
// origin without credentials.
func CORS(origins []string, maxAge time.Duration) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", AuthorizationHeader, RequestIDHeader, IdempotencyKeyHeader,
		},
		ExposeHeaders: []string{
			"Content-Length", RequestIDHeader, RateLimitLimit, RateLimitRemaining, RetryAfter, IdempotentReplayHeader,
		},
		MaxAge: maxAge,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
