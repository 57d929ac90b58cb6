package app

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	appmiddleware "github.com/metinatakli/theatre-box-office/internal/middleware"
)

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	RateLimit        appmiddleware.RateLimitConfig
	Upload           UploadConfig
	OtelCollectorUrl string
	DisplayVersion   bool
}

type DBConfig struct {
	DSN            string
	MaxOpenConns   int
	MaxIdleTime    time.Duration
	MigrationsPath string
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type UploadConfig struct {
	// Root is the directory that image paths such as "uploads/images/x.png"
	// are resolved against.
	Root     string
	MaxBytes int64
}

// loadConfig parses the command line. Every flag defaults to an environment
// variable, and variables missing from the environment are read from .env
// when that file exists.
func loadConfig() (Config, error) {
	var cfg Config

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")
	flag.StringVar(&cfg.DB.MigrationsPath, "migrate", envString("DB_MIGRATIONS", ""), "Apply migrations from this source (e.g. file://migrations) before starting")

	flag.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flag.BoolVar(&cfg.RateLimit.Enabled, "limiter-enabled", envBool("LIMITER_ENABLED", true), "Enable the reservation rate limiter")
	flag.IntVar(&cfg.RateLimit.Capacity, "limiter-capacity", envInt("LIMITER_CAPACITY", 10), "Reservation requests allowed in a burst")
	flag.IntVar(&cfg.RateLimit.RefillTokens, "limiter-refill-tokens", envInt("LIMITER_REFILL_TOKENS", 1), "Tokens added on every refill")
	flag.DurationVar(&cfg.RateLimit.RefillInterval, "limiter-refill-interval", envDuration("LIMITER_REFILL_INTERVAL", 6*time.Second), "Interval between refills")
	flag.DurationVar(&cfg.RateLimit.TTL, "limiter-ttl", envDuration("LIMITER_TTL", 10*time.Minute), "Expiry of idle buckets")
	flag.StringVar(&cfg.RateLimit.Prefix, "limiter-prefix", envString("LIMITER_PREFIX", "rate_limit:reservations"), "Redis key prefix of the buckets")

	flag.StringVar(&cfg.Upload.Root, "upload-root", envString("UPLOAD_ROOT", "."), "Directory uploaded images are stored under")
	flag.Int64Var(&cfg.Upload.MaxBytes, "upload-max-bytes", int64(envInt("UPLOAD_MAX_BYTES", 5<<20)), "Maximum size of an uploaded image")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flag.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	flag.Parse()

	return cfg, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
