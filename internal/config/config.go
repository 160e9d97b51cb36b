// Package config loads lazconv settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Redis   RedisConfig
	Queue   QueueConfig
	Codec   CodecConfig
	Archive ArchiveConfig
	Log     LogConfig
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// QueueConfig describes how conversion tasks travel through the worker pool.
type QueueConfig struct {
	Name string `env:"QUEUE_NAME" envDefault:"laz"`
	// Worker-side parallelism; also the limit of the in-process pool.
	Concurrency int `env:"QUEUE_CONCURRENCY" envDefault:"4"`
	// 0 mirrors a plain submit: a failed conversion is final.
	MaxRetry     int           `env:"QUEUE_MAX_RETRY" envDefault:"0"`
	Retention    time.Duration `env:"QUEUE_RETENTION" envDefault:"24h"`
	PollInterval time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"1s"`
}

type CodecConfig struct {
	Binary string `env:"LAZ_CODEC_BIN" envDefault:"laszip"`
}

// ArchiveConfig selects a bucket as the archive destination. Leaving Bucket
// empty keeps archives on the local filesystem.
type ArchiveConfig struct {
	Endpoint  string `env:"ARCHIVE_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ARCHIVE_ACCESS_KEY" envDefault:""`
	SecretKey string `env:"ARCHIVE_SECRET_KEY" envDefault:""`
	Bucket    string `env:"ARCHIVE_BUCKET" envDefault:""`
	UseSSL    bool   `env:"ARCHIVE_USE_SSL" envDefault:"false"`
}

// UseBucket reports whether archived LAZ files go to object storage.
func (a ArchiveConfig) UseBucket() bool {
	return a.Bucket != ""
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// console or json
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	// Optional rotating JSON log file, in addition to stderr.
	File           string `env:"LOG_FILE" envDefault:""`
	FileMaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	FileMaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
	FileMaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"7"`
}

// Load reads configuration from the environment, after merging in a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Queue.Concurrency < 1 {
		return nil, fmt.Errorf("QUEUE_CONCURRENCY must be at least 1, got %d", cfg.Queue.Concurrency)
	}
	if cfg.Queue.MaxRetry < 0 {
		return nil, fmt.Errorf("QUEUE_MAX_RETRY must not be negative, got %d", cfg.Queue.MaxRetry)
	}
	if cfg.Queue.PollInterval <= 0 {
		return nil, fmt.Errorf("QUEUE_POLL_INTERVAL must be positive, got %s", cfg.Queue.PollInterval)
	}
	// Completed tasks must outlive one poll or the dispatcher loses their result.
	if cfg.Queue.Retention < cfg.Queue.PollInterval {
		return nil, fmt.Errorf("QUEUE_RETENTION (%s) must not be shorter than QUEUE_POLL_INTERVAL (%s)",
			cfg.Queue.Retention, cfg.Queue.PollInterval)
	}
	return cfg, nil
}
