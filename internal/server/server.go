package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/books-gateway/handlers"
	"github.com/gogotex/books-gateway/internal/config"
	"github.com/gogotex/books-gateway/internal/document/handler"
	"github.com/gogotex/books-gateway/internal/document/service"
	"github.com/gogotex/books-gateway/pkg/logger"
	"github.com/gogotex/books-gateway/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the HTTP layer is built from. Only Service is required.
type Deps struct {
	Service   service.Service
	RateLimit config.RateLimitConfig
	// Redis backs the fixed-window limiter when RateLimit.UseRedis is set.
	Redis *redis.Client
	// Snapshots enables POST /export; leave nil to disable.
	Snapshots      handler.SnapshotStore
	SnapshotPrefix string
	SnapshotExpiry time.Duration
}

// New builds the gin engine with middlewares and all routes registered.
func New(d Deps) *gin.Engine {
	r := gin.New()

	// Lightweight CORS middleware: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.Use(middleware.RequestLogger(), gin.Recovery())

	if d.RateLimit.Enabled {
		if d.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(d.RateLimit.WindowSeconds) * time.Second
			logger.Infof("rate limiter: redis, rps=%v burst=%d window=%s", d.RateLimit.RPS, d.RateLimit.Burst, win)
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, d.RateLimit.RPS, d.RateLimit.Burst, win))
		} else {
			logger.Infof("rate limiter: memory, rps=%v burst=%d", d.RateLimit.RPS, d.RateLimit.Burst)
			r.Use(middleware.RateLimitMiddleware(d.RateLimit.RPS, d.RateLimit.Burst))
		}
	}

	handler.RegisterDocumentRoutes(r, d.Service)

	prefix := d.SnapshotPrefix
	if prefix == "" {
		prefix = "snapshots"
	}
	expiry := d.SnapshotExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	handler.RegisterExportRoute(r, d.Service, d.Snapshots, prefix, expiry)

	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
