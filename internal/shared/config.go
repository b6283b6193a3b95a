package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	GeminiKeys  []string
	Model       string
	LLMTimeout  time.Duration
	LLMRPS      int
	Workers     int
	FeedPath    string
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/dante?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		GeminiKeys:  loadKeys(),
		Model:       env("WORKING_MODEL", "gemini-2.0-flash-001"),
		LLMTimeout:  time.Duration(atoi("LLM_TIMEOUT_SECONDS", 15)) * time.Second,
		LLMRPS:      atoi("LLM_RPS", 5),
		Workers:     atoi("LOAD_WORKERS", 8),
		FeedPath:    env("FEED_PATH", "propiedades.json"),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if len(c.GeminiKeys) == 0 {
		log.Warn().Msg("no GEMINI_API_KEY_N configured; chat will run in fallback mode")
	}
	return c
}

// loadKeys reads GEMINI_API_KEY_1..5 in order, skipping blank entries.
// Declaration order is the rotation order.
func loadKeys() []string {
	var keys []string
	for i := 1; i <= 5; i++ {
		if v := os.Getenv(fmt.Sprintf("GEMINI_API_KEY_%d", i)); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
