package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Platform PlatformConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

// PlatformConfig points at the ESG platform backend serving auth and
// inference.
type PlatformConfig struct {
	BaseURL        string        `env:"PLATFORM_BASE_URL,        default=http://localhost:8002"`
	RequestTimeout time.Duration `env:"PLATFORM_REQUEST_TIMEOUT, default=15s"`
	UploadTimeout  time.Duration `env:"PLATFORM_UPLOAD_TIMEOUT,  default=30s"`
	RestoreTimeout time.Duration `env:"SESSION_RESTORE_TIMEOUT,  default=5s"`
}

// SnapshotConfig selects where the session snapshot is persisted.
type SnapshotConfig struct {
	// Backend is one of: memory, redis, mongo.
	Backend string        `env:"SNAPSHOT_BACKEND, default=memory"`
	TTL     time.Duration `env:"SNAPSHOT_TTL,     default=24h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=esg_gateway"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
