package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string
	MongoURI    string
	MongoDB     string

	TokenSecret string
	TokenTTL    time.Duration

	PostTTL      time.Duration
	SweepCron    string
	SweepTimeout time.Duration

	RedisAddr       string
	RateLimitPerMin int

	RabbitURL      string
	RabbitExchange string

	DDEnabled bool

	NotifyQueue       string
	NotifyBindKey     string
	NotifyConcurrency int
}

func (c Config) Prod() bool { return c.Env == "prod" }

// Load reads the environment, after preloading a .env file when present.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getenv("APP_PORT", "3000"),
		Env:         strings.ToLower(getenv("APP_ENV", "dev")),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "mongo")),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "piazza"),

		TokenSecret: getenv("TOKEN_SECRET", "default_secret_key"),
		TokenTTL:    duration("TOKEN_TTL", 24 * time.Hour),

		PostTTL:      duration("POST_TTL", 5 * time.Minute),
		SweepCron:    getenv("SWEEP_CRON", "* * * * *"),
		SweepTimeout: duration("SWEEP_TIMEOUT", 30 * time.Second),

		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi("RATE_LIMIT_PER_MIN", 10),

		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "board.events"),

		DDEnabled: boolean(getenv("DD_ENABLED", "false")),

		NotifyQueue:       getenv("NOTIFY_QUEUE", "board.notify"),
		NotifyBindKey:     getenv("NOTIFY_BIND_KEY", "#"),
		NotifyConcurrency: atoi("NOTIFY_CONCURRENCY", 4),
	}
}

// atoi and duration fall back to def when the variable is unset, malformed
// or not positive.
func atoi(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}

func boolean(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
