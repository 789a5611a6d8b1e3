package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/jobpilot/jobreview/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	return InitLoggerTo(os.Stdout, slog.LevelInfo)
}

// InitLoggerTo installs a JSON logger writing to w as the default logger.
func InitLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	if err := ValidateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig rejects configurations the service cannot start with. A missing table
// or index name is reported by its environment variable.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	err := configValidator.Struct(cfg.Dynamo)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, dynamoEnvName(fe.StructField()))
	}
	return fmt.Errorf("invalid configuration: missing %s", strings.Join(missing, ", "))
}

func dynamoEnvName(field string) string {
	switch field {
	case "TableName":
		return "DYNAMODB_TABLE_NAME"
	case "UnprocessedIndex":
		return "DYNAMODB_UNPROCESSED_JOBS_INDEX"
	case "Region":
		return "AWS_REGION"
	default:
		return field
	}
}
