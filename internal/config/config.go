package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/architech-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr            string        `env:"SERVER_ADDR,notEmpty"`
	ServerRequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"180s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORS                  CORSConfig    `envPrefix:"CORS_"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`
	MigrationsPath      string               `env:"MIGRATIONS_PATH" envDefault:"file://internal/repository/migrations"`

	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type CORSConfig struct {
	AllowedOrigins      []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedOriginSuffix string   `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:".vercel.app"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider                string `env:"PROVIDER" envDefault:"groq"`
	Model                   string `env:"MODEL" envDefault:"llama-3.3-70b-versatile"`
	InterviewModel          string `env:"INTERVIEW_MODEL" envDefault:"openai/gpt-oss-120b"`
	ChatCompletionsEndpoint string `env:"CHAT_COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.groq.com/openai/v1"`
}

// LoadConfig reads .env.<environment> if present and parses the process
// environment into a Config.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerRequestTimeout <= 0 {
		errors = append(errors, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.DBConnectRetry.Attempts < 1 {
		errors = append(errors, "DB_CONNECT_RETRY_ATTEMPTS must be at least 1")
	}

	// Validate LLM configuration
	llm := cfg.LLMConnectorCfg
	switch llm.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", ProviderGroq, ProviderGemini, llm.Provider))
	}

	if !cfg.EnableMocks && llm.Token == "" {
		errors = append(errors, "LLM_TOKEN is required unless ENABLE_MOCKS is set")
	}

	if llm.Model == "" {
		errors = append(errors, "LLM_MODEL must not be empty")
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL is invalid: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// InterviewModelOrDefault is the model used for interview scoring and
// questions.
func (c LLMConnectorConfig) InterviewModelOrDefault() string {
	if c.InterviewModel != "" {
		return c.InterviewModel
	}
	return c.Model
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
