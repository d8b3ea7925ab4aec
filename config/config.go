package config

import (
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds process configuration. Business settings (payout rates, ceilings) live in the
// settings table, not here.
type Config struct {
	Port string `env:"PORT,default=8080"`
	Env  string `env:"ENV,default=development"`

	DatabaseURL       string        `env:"DATABASE_URL"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=1h"`
	DBConnectRetries  int           `env:"DB_CONNECT_RETRIES,default=5"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPass       string        `env:"REDIS_PASS"`
	RedisDB         int           `env:"REDIS_DB,default=0"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL,default=30s"`

	SettleCron       string `env:"SETTLE_CRON,default=@every 15m"`
	RecomputeWorkers int    `env:"RECOMPUTE_WORKERS,default=8"`

	S3Bucket string `env:"S3_BUCKET"`
	S3Prefix string `env:"S3_PREFIX,default=settlements"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads .env (when present) without overriding variables that are already set, then
// decodes the environment into a Config.
func Load() (*Config, error) {
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// SetupLogger configures the standard logrus logger from LOG_LEVEL / LOG_FORMAT.
func (c *Config) SetupLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
