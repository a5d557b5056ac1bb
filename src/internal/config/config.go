package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=inmobiliaria_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "BackOffice"
const defaultChannelKey = "BackOfficeKey001"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	ServerPort            string `mapstructure:"SERVER_PORT"`
	DatabaseDSN           string `mapstructure:"DATABASE_DSN"`
	StorageDriver         string `mapstructure:"STORAGE_DRIVER"`
	MigrationsDir         string `mapstructure:"MIGRATIONS_DIR"`
	ChannelID             string `mapstructure:"CHANNEL_ID"`
	ChannelKey            string `mapstructure:"CHANNEL_KEY"`
	ChannelKeyHash        string `mapstructure:"CHANNEL_KEY_HASH"`
	SessionSigningKey     string `mapstructure:"SESSION_SIGNING_KEY"`
	SessionTTLHours       int    `mapstructure:"SESSION_TTL_HOURS"`
	RedisURL              string `mapstructure:"REDIS_URL"`
	IdempotencyPrefix     string `mapstructure:"IDEMPOTENCY_PREFIX"`
	IdempotencyTTLMinutes int    `mapstructure:"IDEMPOTENCY_TTL_MINUTES"`
	RabbitMQURL           string `mapstructure:"RABBITMQ_URL"`
	LedgerEventExchange   string `mapstructure:"LEDGER_EVENT_EXCHANGE"`
	OverdueJobSchedule    string `mapstructure:"OVERDUE_JOB_SCHEDULE"`
	LateFeeGraceDays      int    `mapstructure:"LATE_FEE_GRACE_DAYS"`
	PaymentToleranceRaw   string `mapstructure:"PAYMENT_TOLERANCE"`
	DailyLateRateRaw      string `mapstructure:"DEFAULT_DAILY_LATE_RATE"`
	CORSAllowedOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	PaymentTolerance decimal.Decimal `mapstructure:"-"`
	DailyLateRate    decimal.Decimal `mapstructure:"-"`
}

var envKeys = []string{
	"SERVER_PORT",
	"DATABASE_DSN",
	"STORAGE_DRIVER",
	"MIGRATIONS_DIR",
	"CHANNEL_ID",
	"CHANNEL_KEY",
	"CHANNEL_KEY_HASH",
	"SESSION_SIGNING_KEY",
	"SESSION_TTL_HOURS",
	"REDIS_URL",
	"IDEMPOTENCY_PREFIX",
	"IDEMPOTENCY_TTL_MINUTES",
	"RABBITMQ_URL",
	"LEDGER_EVENT_EXCHANGE",
	"OVERDUE_JOB_SCHEDULE",
	"LATE_FEE_GRACE_DAYS",
	"PAYMENT_TOLERANCE",
	"DEFAULT_DAILY_LATE_RATE",
	"CORS_ALLOWED_ORIGINS",
}

// Load reads configuration from the environment, falling back to an optional
// .env file in path and then to hardcoded defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil {
		logger.Info("config no .env file found, relying on environment", nil)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_DSN", defaultConnectionString)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations"))
	v.SetDefault("CHANNEL_ID", defaultChannelID)
	v.SetDefault("CHANNEL_KEY", defaultChannelKey)
	v.SetDefault("SESSION_SIGNING_KEY", "register-session-dev-signing-key")
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("IDEMPOTENCY_PREFIX", "ledger:idempotency")
	v.SetDefault("IDEMPOTENCY_TTL_MINUTES", 1440)
	v.SetDefault("LEDGER_EVENT_EXCHANGE", "ledger_events")
	v.SetDefault("OVERDUE_JOB_SCHEDULE", "0 1 * * *") // At 01:00 every day.
	v.SetDefault("LATE_FEE_GRACE_DAYS", 90)
	v.SetDefault("PAYMENT_TOLERANCE", "50")
	v.SetDefault("DEFAULT_DAILY_LATE_RATE", "0.0275")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://*,https://*")

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DatabaseDSN = normalizeConnectionString(strings.TrimSpace(cfg.DatabaseDSN))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.ChannelID = strings.TrimSpace(cfg.ChannelID)
	cfg.ChannelKey = strings.TrimSpace(cfg.ChannelKey)
	cfg.ChannelKeyHash = strings.TrimSpace(cfg.ChannelKeyHash)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string

	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		errs = append(errs, "STORAGE_DRIVER must be postgres or memory")
	}

	tolerance, err := decimal.NewFromString(strings.TrimSpace(c.PaymentToleranceRaw))
	if err != nil || tolerance.IsNegative() {
		errs = append(errs, "PAYMENT_TOLERANCE must be a non-negative number")
	} else {
		c.PaymentTolerance = tolerance
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(c.DailyLateRateRaw))
	if err != nil || rate.IsNegative() {
		errs = append(errs, "DEFAULT_DAILY_LATE_RATE must be a non-negative number")
	} else {
		c.DailyLateRate = rate
	}

	if c.LateFeeGraceDays < 0 {
		errs = append(errs, "LATE_FEE_GRACE_DAYS cannot be negative")
	}
	if c.SessionTTLHours <= 0 {
		errs = append(errs, "SESSION_TTL_HOURS must be greater than zero")
	}
	if c.IdempotencyTTLMinutes <= 0 {
		errs = append(errs, "IDEMPOTENCY_TTL_MINUTES must be greater than zero")
	}
	if strings.TrimSpace(c.SessionSigningKey) == "" {
		errs = append(errs, "SESSION_SIGNING_KEY is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
