package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogotex/books-gateway/internal/config"
	"github.com/gogotex/books-gateway/internal/database"
	"github.com/gogotex/books-gateway/internal/document/service"
	"github.com/gogotex/books-gateway/internal/server"
	"github.com/gogotex/books-gateway/internal/storage"
	"github.com/gogotex/books-gateway/pkg/logger"
	"github.com/gogotex/books-gateway/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// LOG_LEVEL is read again through config below; this covers config errors.
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Connect to %s...", cfg.MongoDB.URI)
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to create MongoDB client: %v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	// The gateway still starts when the server is down; /check reports it.
	if err := database.Ping(ctx, client, cfg.MongoDB.Timeout); err != nil {
		logger.Warnf("MongoDB not reachable yet: %v", err)
	}

	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	deps := server.Deps{
		Service:        service.NewMongoService(col, cfg.MongoDB.Timeout),
		RateLimit:      cfg.RateLimit,
		SnapshotPrefix: cfg.MongoDB.Database + "/" + cfg.MongoDB.Collection,
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s), using in-process rate limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
		} else {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			defer rdb.Close()
			deps.Redis = rdb
		}
	}

	if mcfg := storage.LoadMinIOConfig(); mcfg.Enabled() {
		snaps, err := storage.NewMinIOStorage(ctx, mcfg)
		if err != nil {
			logger.Warnf("snapshot export disabled: %v", err)
		} else {
			logger.Infof("snapshot export enabled: bucket=%s", snaps.Bucket())
			deps.Snapshots = snaps
			deps.SnapshotExpiry = mcfg.URLExpiry
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.New(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting books gateway on %s (db=%s collection=%s)", srv.Addr, cfg.MongoDB.Database, cfg.MongoDB.Collection)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
