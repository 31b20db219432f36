package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	KafkaBrokers  []string
	KafkaTopic    string
}

// Load reads everything from the environment with development defaults, so
// `go run ./cmd/api` against local mysql/redis works without any setup.
func Load() *Config {
	cfg := &Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		MySQLDSN:      getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/channels?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		SessionSecret: getenv("SESSION_SECRET", "secret-key"),
		SessionTTL:    getduration("SESSION_TTL", 24*time.Hour),
		KafkaTopic:    getenv("KAFKA_TOPIC", "channel-events"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
