package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"njangitech_backend/internals/helpers/logger"
)

type AppConfig struct {
	Port        string
	Environment string
	LogLevel    string

	DBUser             string
	DBPassword         string
	DBHost             string
	DBPort             string
	DBName             string
	DBSSLMode          string
	DBStatementTimeout time.Duration

	JWTSecret    string
	AuthDisabled bool
	CORSOrigins  string

	RequestTimeout     time.Duration
	RulesFile          string
	OverdueRefreshCron string

	Rules Rules
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		logger.Info("running on railway, using system env")
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using system env")
		return
	}
	logger.Info(".env file loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load reads the process configuration from the environment and the
// optional business rules file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:               GetEnv("PORT", "3000"),
		Environment:        GetEnv("RAILWAY_ENVIRONMENT", "local"),
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		DBUser:             GetEnv("DB_USER"),
		DBPassword:         GetEnv("DB_PASSWORD"),
		DBHost:             GetEnv("DB_HOST", "localhost"),
		DBPort:             GetEnv("DB_PORT", "5432"),
		DBName:             GetEnv("DB_NAME", "njangitech"),
		DBSSLMode:          GetEnv("DB_SSLMODE", "require"),
		JWTSecret:          GetEnv("SUPABASE_JWT_SECRET"),
		AuthDisabled:       getBool("AUTH_DISABLED", false),
		CORSOrigins:        GetEnv("CORS_ORIGINS", "*"),
		RulesFile:          GetEnv("RULES_FILE"),
		OverdueRefreshCron: GetEnv("OVERDUE_REFRESH_CRON"),
	}

	var err error
	if cfg.DBStatementTimeout, err = getDuration("DB_STATEMENT_TIMEOUT_MS", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if cfg.Rules, err = LoadRules(cfg.RulesFile); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" && !cfg.AuthDisabled {
		logger.Warn("SUPABASE_JWT_SECRET is not set, every authenticated request will be rejected")
	}
	logger.Info("configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("auth_disabled", cfg.AuthDisabled),
		zap.String("rules_file", cfg.RulesFile),
	)
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s&statement_timeout=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
		c.DBStatementTimeout.Milliseconds(),
	)
}
