package config

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
)

type Target string

const (
	App    Target = "app"
	Worker Target = "worker"
	Backup Target = "backup"
	Fetch  Target = "fetch"
)

type Config struct {
	// Running localy or not
	Debug  bool   `env:"DEBUG" envDefault:"false"`
	Target Target `env:"TARGET" envDefault:"fetch"`

	// App settings
	AppName string `env:"APP_NAME" envDefault:"transcript-store"`
	Domain  string `env:"DOMAIN"`

	// Transcript retrieval settings
	TranscriptLanguages []string      `env:"TRANSCRIPT_LANGUAGES" envDefault:"en"`
	WatchBaseURL        string        `env:"WATCH_BASE_URL" envDefault:"https://www.youtube.com/watch"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"20s"`
	UserAgent           string        `env:"USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64)"`

	// Google APIs settings
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	// Worker settings
	RefreshInterval  time.Duration `env:"REFRESH_INTERVAL" envDefault:"168h"`
	WorkerLockExpiry time.Duration `env:"WORKER_LOCK_EXPIRY" envDefault:"30m"`
	MaxRetries       int           `env:"MAX_RETRIES" envDefault:"3"`

	// Cloudflare R2
	R2BackupBucketName string `env:"R2_BACKUP_BUCKET_NAME"`
	R2AccountId        string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyId      string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey  string `env:"R2_SECRET_ACCESS_KEY"`

	// Redis
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string        `env:"REDIS_USERNAME"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTimeout  time.Duration `env:"CACHE_TIMEOUT" envDefault:"86400s"`

	// Postgres
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBDatabase string `env:"DB_DATABASE"`
	DBUsername string `env:"DB_USERNAME"`
	DBPassword string `env:"DB_PASSWORD"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"4"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"5000"`
}

// New creates new config object
func New() *Config {

	// Parse the config from the environment
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}

	numCPU := runtime.NumCPU()
	if numCPU > math.MaxInt32 || numCPU < math.MinInt32 {
		log.Fatalf("failed to get proper CPU cores count: %d", numCPU)
	}

	// Cap the DBMaxConns to the number of cores
	cfg.DBMaxConns = max(cfg.DBMaxConns, int32(numCPU))

	// Check if the target binary has all the necessary settings
	if err := cfg.validate(); err != nil {
		log.Fatalf("invalid config for target '%s'; %v", cfg.Target, err)
	}

	return &cfg
}

// validate checks the settings each target binary cannot run without.
// The fetch CLI needs no backing services, so it requires nothing.
func (c *Config) validate() error {

	required := map[string]string{}

	switch c.Target {
	case App, Worker:
		required["DB_DATABASE"] = c.DBDatabase
		required["DB_USERNAME"] = c.DBUsername
		required["REDIS_HOST"] = c.RedisHost
	case Backup:
		required["DB_DATABASE"] = c.DBDatabase
		required["DB_USERNAME"] = c.DBUsername
		required["R2_BACKUP_BUCKET_NAME"] = c.R2BackupBucketName
		required["R2_ACCOUNT_ID"] = c.R2AccountId
		required["R2_ACCESS_KEY_ID"] = c.R2AccessKeyId
		required["R2_SECRET_ACCESS_KEY"] = c.R2SecretAccessKey
	}

	for name, value := range required {
		if value == "" {
			return fmt.Errorf("empty or no value defined in env: %s", name)
		}
	}

	return nil
}
