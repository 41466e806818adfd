package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrMissingToken is reported when the bot token is not configured.
var ErrMissingToken = errors.New("TELEGRAM_TOKEN environment variable is required")

// Config holds all configuration for the application
type Config struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	WebhookURL     string `mapstructure:"webhook_url"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	Port           string `mapstructure:"port"`
	PrometheusPort string `mapstructure:"prometheus_port"`

	LLMProvider              string `mapstructure:"llm_provider"`
	OpenAIAPIKey             string `mapstructure:"openai_api_key"`
	OpenAIBaseURL            string `mapstructure:"openai_base_url"`
	OpenAIModel              string `mapstructure:"openai_model"`
	OpenAITranscriptionModel string `mapstructure:"openai_transcription_model"`
	GeminiAPIKey             string `mapstructure:"gemini_api_key"`
	GeminiModel              string `mapstructure:"gemini_model"`

	StorageDriver string `mapstructure:"storage_driver"`
	ExpensesFile  string `mapstructure:"expenses_file"`
	DatabaseURL   string `mapstructure:"database_url"`

	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
	AMQPQueue    string `mapstructure:"amqp_queue"`
}

var defaults = map[string]string{
	"telegram_token":             "",
	"webhook_url":                "",
	"log_level":                  "info",
	"log_format":                 "text",
	"port":                       "8080",
	"prometheus_port":            "9090",
	"llm_provider":               ProviderOpenAI,
	"openai_api_key":             "",
	"openai_base_url":            "https://api.openai.com/v1",
	"openai_model":               "gpt-4o-mini",
	"openai_transcription_model": "whisper-1",
	"gemini_api_key":             "",
	"gemini_model":               "gemini-1.5-flash",
	"storage_driver":             StorageFile,
	"expenses_file":              "shopping_expenses.json",
	"database_url":               "",
	"amqp_url":                   "",
	"amqp_exchange":              "bozorlik",
	"amqp_queue":                 "bozorlik.purchases",
}

// Load reads configuration from a .env file (if present), an optional YAML
// config file and environment variables, in increasing order of precedence.
// Only storage and logging settings are validated here; call ValidateBot
// before starting the bot.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path := os.Getenv("BOZORLIK_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || os.Getenv("BOZORLIK_CONFIG") != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks logging and storage settings and reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		result = multierror.Append(result, fmt.Errorf("invalid LOG_FORMAT %q (must be 'text' or 'json')", c.LogFormat))
	}

	switch c.StorageDriver {
	case StorageFile:
		if c.ExpensesFile == "" {
			result = multierror.Append(result, fmt.Errorf("EXPENSES_FILE is required for the file storage driver"))
		}
	case StoragePostgres, StorageSQLite:
		if c.DatabaseURL == "" {
			result = multierror.Append(result, fmt.Errorf("DATABASE_URL is required for the %s storage driver", c.StorageDriver))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	return result.ErrorOrNil()
}

// ValidateBot checks the settings needed to run the Telegram bot.
func (c *Config) ValidateBot() error {
	var result *multierror.Error

	if c.TelegramToken == "" {
		result = multierror.Append(result, ErrMissingToken)
	}

	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			result = multierror.Append(result, fmt.Errorf("OPENAI_API_KEY is required for the openai provider"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			result = multierror.Append(result, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	return result.ErrorOrNil()
}
