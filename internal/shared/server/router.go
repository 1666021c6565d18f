package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/screening"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const analyzeRateGroup = "ANALYZE"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	ScreeningHandler *screening.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
	)

	// Analysis runs call the hosted model; one per session every few seconds
	// is plenty for a dashboard.
	analyzeLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			analyzeRateGroup: {Rate: 0.2, Burst: 3},
		},
		DefaultGroup: analyzeRateGroup,
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.ScreeningHandler.RegisterRoutes(api, analyzeLimiter)

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
