package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/screening"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

// RouterDeps groups the handlers mounted by NewRouter.
type RouterDeps struct {
	Config           config.Config
	ScreeningHandler *screening.Handler
	Health           *health.Service
	// Limiter is shared across routers built from the same deps; nil creates one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	uploadLimit := middleware.RateLimit(middleware.UploadScope, middleware.RateLimitRule{
		Rate:  cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}, deps.Limiter)

	hs := deps.Health
	if hs == nil {
		hs = health.NewService(nil)
	}
	live := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, hs.Status())
	}
	ready := func(c *gin.Context) {
		report := hs.Ready(c.Request.Context())
		status := http.StatusOK
		if !report.Ready {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}

	r.GET("/health", live)
	r.GET("/ready", ready)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", live)
	api.GET("/ready", ready)

	if deps.ScreeningHandler != nil {
		r.POST("/upload_resume/", uploadLimit, deps.ScreeningHandler.Upload)
		deps.ScreeningHandler.RegisterRoutes(api, uploadLimit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
