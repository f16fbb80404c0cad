package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in CASELENS_STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile   string // optional rotating log file path

	// Storage
	StorageBackend string // "memory" | "sqlite" | "redis"
	SQLitePath     string // path to the sqlite db file (sqlite backend)

	// Redis (redis backend only)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	// SPARQL proxy
	SparqlEndpoint  string        // ex: https://query.wikidata.org/sparql
	SparqlUserAgent string        // identifying User-Agent per WDQS policy
	SparqlTimeout   time.Duration // per-request timeout
	SparqlRetries   int           // retries after the first attempt
	SparqlRetryBase time.Duration // first backoff, doubled per retry
	SparqlCacheTTL  time.Duration // response cache TTL (0 = no cache)
	SearchLimit     int           // max search results per query
	BrowseLimit     int           // max browse results per query
	DefaultLanguage string        // label language fallback

	// Browse topics
	TopicsFile     string        // path to topics.yaml ("" = browse disabled)
	ReloadInterval time.Duration // interval to reload topics.yaml

	// Share links
	ShareBaseURL string // public base URL used in share links

	// Access
	AllowedOrigins  []string // CORS origins (empty = same-origin only)
	AllowedCIDRS    []string // restrict ops endpoints to these IPs/CIDRs
	TrustProxy      bool     // trust X-Forwarded-For headers
	RateLimitBurst  int      // token bucket size per client IP
	RateLimitPerMin int      // token refill per client IP per minute
}

func Load() *Config {
	// Best effort: a missing .env just means plain environment config.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CASELENS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CASELENS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CASELENS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CASELENS_PRETTY_LOG", true),
		LogFile:   getenv("CASELENS_LOG_FILE", ""),

		// Storage
		StorageBackend: getenv("CASELENS_STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getenv("CASELENS_SQLITE_PATH", "caselens.db"),

		// Redis settings
		RedisAddr:           getenv("CASELENS_REDIS_ADDR", ""),
		RedisUser:           getenv("CASELENS_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("CASELENS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("CASELENS_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// SPARQL proxy
		SparqlEndpoint:  getenv("CASELENS_SPARQL_ENDPOINT", "https://query.wikidata.org/sparql"),
		SparqlUserAgent: getenv("CASELENS_SPARQL_USER_AGENT", "caselens/1.0 (https://github.com/caselens/caselens)"),
		SparqlTimeout:   mustDuration("CASELENS_SPARQL_TIMEOUT", 20*time.Second),
		SparqlRetries:   getenvInt("CASELENS_SPARQL_RETRIES", 2),
		SparqlRetryBase: mustDuration("CASELENS_SPARQL_RETRY_BASE", 500*time.Millisecond),
		SparqlCacheTTL:  mustDuration("CASELENS_SPARQL_CACHE_TTL", 10*time.Minute),
		SearchLimit:     getenvInt("CASELENS_SEARCH_LIMIT", 25),
		BrowseLimit:     getenvInt("CASELENS_BROWSE_LIMIT", 50),
		DefaultLanguage: getenv("CASELENS_DEFAULT_LANGUAGE", "en"),

		// Topics
		TopicsFile:     getenv("CASELENS_TOPICS_FILE", ""),
		ReloadInterval: mustDuration("CASELENS_RELOAD_INTERVAL", 24*time.Hour),

		// Share links
		ShareBaseURL: getenv("CASELENS_SHARE_BASE_URL", "http://localhost:8080"),

		// Access
		AllowedOrigins:  splitAndTrim(getenv("CASELENS_ALLOWED_ORIGINS", "")),
		AllowedCIDRS:    splitAndTrim(getenv("CASELENS_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("CASELENS_TRUST_PROXY", false),
		RateLimitBurst:  getenvInt("CASELENS_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("CASELENS_RATE_LIMIT_PER_MIN", 60),
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			panic("FATAL: CASELENS_REDIS_ADDR is required when CASELENS_STORAGE_BACKEND=redis")
		}
	default:
		panic(fmt.Sprintf("FATAL: unknown storage backend %q", cfg.StorageBackend))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
