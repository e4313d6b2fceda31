package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type (
	HTTPServer struct {
		Port                 string
		RequestTimeout       time.Duration // middleware timeout
		RateLimiterQPS       int           // middleware  rate limiter capacity
		RateLimiterBurst     int           // middlewarerate limiter burst/refill
		PINAttemptsPerMinute int           // попытки PIN на один IP
		PprofEnabled         bool
		PprofPort            string
		GRPCHealthPort       string
	}

	Storage struct {
		Driver  string
		Migrate bool
		Seed    bool
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		URL            string
		IdempotencyTTL time.Duration
	}

	Kafka struct {
		Brokers string
		Topic   string
		Sarama  Sarama
	}

	Sarama struct {
		Version string
	}

	Log struct {
		File string
	}

	Config struct {
		Server   HTTPServer
		Storage  Storage
		Database Database
		Redis    Redis
		Kafka    Kafka
		Log      Log
	}
)

func (s Storage) UsePostgres() bool {
	return s.Driver == StorageDriverPostgres
}

func (r Redis) Enabled() bool {
	return r.URL != ""
}

func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pinAttempts, err := osGetInt("MIDDLEWARE_PIN_ATTEMPTS_PER_MINUTE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrate, err := osGetBoolDefault("POSTGRES_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	seed, err := osGetBoolDefault("SEED_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	idempotencyTTL, err := osGetEnvDuration("IDEMPOTENCY_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if idempotencyTTL == 0 {
		idempotencyTTL = 24 * time.Hour
	}

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = StorageDriverPostgres
	}

	return &Config{
		Server: HTTPServer{
			Port:                 os.Getenv("PORT"),
			RequestTimeout:       requestTimeout,
			RateLimiterQPS:       rateLimiterQPS,
			RateLimiterBurst:     rateLimiterBurst,
			PINAttemptsPerMinute: pinAttempts,
			PprofEnabled:         pprofEnabled,
			PprofPort:            os.Getenv("PPROF_PORT"),
			GRPCHealthPort:       os.Getenv("GRPC_HEALTH_PORT"),
		},
		Storage: Storage{
			Driver:  driver,
			Migrate: migrate,
			Seed:    seed,
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Redis: Redis{
			URL:            os.Getenv("REDIS_URL"),
			IdempotencyTTL: idempotencyTTL,
		},
		Kafka: Kafka{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topic:   os.Getenv("KAFKA_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
		Log: Log{
			File: os.Getenv("LOG_FILE"),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required and must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required and must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required and must be positive")
	}
	if cfg.Server.PINAttemptsPerMinute <= 0 {
		return errors.New("MIDDLEWARE_PIN_ATTEMPTS_PER_MINUTE is required and must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER=%q is not supported, use %q or %q",
			cfg.Storage.Driver, StorageDriverPostgres, StorageDriverMemory)
	}

	if cfg.Kafka.Enabled() {
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_BROKERS is set")
		}
	}

	return nil
}

func validateDatabase(db Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	return osGetBoolDefault(s, false)
}

func osGetBoolDefault(s string, def bool) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
