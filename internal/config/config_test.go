package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI != "mongodb://localhost:27017/" {
		t.Fatalf("unexpected default URI: %q", cfg.MongoDB.URI)
	}
	if cfg.MongoDB.Database != "db_library" || cfg.MongoDB.Collection != "books" {
		t.Fatalf("unexpected default database/collection: %+v", cfg.MongoDB)
	}
	if cfg.MongoDB.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.MongoDB.Timeout)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Fatalf("unexpected default addr: %q", cfg.Server.Addr())
	}
	if cfg.RateLimit.Enabled {
		t.Fatalf("rate limiting should be off by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGODB_CONNECTION", "mongodb://mongo:27017/")
	t.Setenv("DATABASE_NAME", "library_test")
	t.Setenv("COLLECTION_NAME", "novels")
	t.Setenv("MONGODB_TIMEOUT", "3")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI != "mongodb://mongo:27017/" || cfg.MongoDB.Database != "library_test" || cfg.MongoDB.Collection != "novels" {
		t.Fatalf("unexpected mongo config: %+v", cfg.MongoDB)
	}
	if cfg.MongoDB.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.MongoDB.Timeout)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != "6379" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RPS != 2.5 {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
}

func TestLoadConfigRejectsEmptyDatabaseName(t *testing.T) {
	t.Setenv("DATABASE_NAME", "")

	_, err := LoadConfig()
	if !errors.Is(err, ErrEmptyDatabaseName) {
		t.Fatalf("expected ErrEmptyDatabaseName, got %v", err)
	}
}
