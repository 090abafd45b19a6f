package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the carelink service.
type Server struct {
	Addr              string
	PostgresDSN       string
	Redis             RedisConfig
	RecentEventsLimit int
	SeedDemoData      bool
}

// RedisConfig captures connection settings for the optional Redis-backed
// credit ledger. An empty URL means Redis is not configured.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CARELINK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	recentLimit := 5
	if raw := os.Getenv("CREDIT_EVENTS_RECENT_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			recentLimit = n
		}
	}

	return Server{
		Addr:              addr,
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		Redis:             redisFromEnv(),
		RecentEventsLimit: recentLimit,
		SeedDemoData:      os.Getenv("SEED_DEMO_DATA") == "true",
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
