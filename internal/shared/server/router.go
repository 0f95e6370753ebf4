package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach/internal/coach"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/metrics"
	"career-coach/internal/shared/server/middleware"
	"career-coach/internal/shared/server/respond"
)

// RouterDeps are the handlers and limits the router mounts.
type RouterDeps struct {
	Coach   *coach.Handler
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})

	if deps.Coach != nil {
		deps.Coach.RegisterRoutes(api)

		runs := api.Group("")
		runs.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Group:   "COACH",
			Rule:    middleware.PerMinute(cfg.CoachRatePerMin, cfg.CoachRateBurst),
			Limiter: deps.Limiter,
		}))
		deps.Coach.RegisterRunRoutes(runs)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
