// Package router builds the Gin engine from the composed application.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "advisory_portal_backend/internal/http"
	"advisory_portal_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	adminRole    = "admin"
	readyTimeout = 2 * time.Second
)

// Limiters are the per-IP rate limiters used by the router. The caller owns their
// sweepers.
type Limiters struct {
	Public     *httpkit.IPRateLimiter
	Submission *httpkit.IPRateLimiter
}

// NewLimiters creates the public and submission limiters from configuration.
func NewLimiters(app *apphttp.App) Limiters {
	return Limiters{
		Public:     httpkit.NewIPRateLimiter(app.Config.GetPublicRateLimit(), app.Config.GetPublicRateBurst(), app.Logger),
		Submission: httpkit.NewIPRateLimiter(app.Config.GetLeadRateLimit(), app.Config.GetLeadRateBurst(), app.Logger),
	}
}

// New creates the Gin engine, applies global middleware and mounts every module.
func New(app *apphttp.App, limiters Limiters) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if app.Metrics != nil {
		engine.Use(app.Metrics.Middleware())
	}
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", readiness(app.Health))
	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	v1 := engine.Group("/api/v1")
	ctx := &apphttp.RouterContext{
		Engine:          engine,
		V1:              v1,
		Public:          v1.Group("/public", limiters.Public.RateLimit()),
		Admin:           v1.Group("/admin", httpkit.AuthRequired(app.Config, app.Logger), httpkit.RequireRole(adminRole)),
		SubmissionLimit: limiters.Submission.RateLimit(),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("module registered", "module", m.Name())
	}

	return engine
}

func readiness(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}
