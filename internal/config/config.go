package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	SessionStoreFilesystem = "filesystem"
	SessionStoreS3         = "s3"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// LLM
	LLMProvider  string
	LLMRateLimit float64

	GoogleAPIKey string
	GeminiModel  string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	// Sessions
	SessionsEnabled bool
	SessionTTL      time.Duration
	DatabasePath    string
	SessionStore    string
	SessionStoreDir string

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool
}

// Load reads configuration from defaults, an optional YAML file at path and
// the environment. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:              v.GetString("port"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		UploadDir:         v.GetString("upload_dir"),
		MaxUploadSize:     v.GetInt64("max_upload_size"),
		LLMProvider:       v.GetString("llm_provider"),
		LLMRateLimit:      v.GetFloat64("llm_rate_limit"),
		GoogleAPIKey:      v.GetString("google_api_key"),
		GeminiModel:       v.GetString("gemini_model"),
		OpenRouterAPIKey:  v.GetString("openrouter_api_key"),
		OpenRouterBaseURL: v.GetString("openrouter_base_url"),
		OpenRouterModel:   v.GetString("openrouter_model"),
		SessionsEnabled:   v.GetBool("sessions_enabled"),
		SessionTTL:        v.GetDuration("session_ttl"),
		DatabasePath:      v.GetString("database_path"),
		SessionStore:      v.GetString("session_store"),
		SessionStoreDir:   v.GetString("session_store_dir"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		S3AccessKeyID:     v.GetString("s3_access_key_id"),
		S3SecretAccessKey: v.GetString("s3_secret_access_key"),
		S3BucketName:      v.GetString("s3_bucket_name"),
		S3UseSSL:          v.GetBool("s3_use_ssl"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required")
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.MaxUploadSize < 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must not be negative")
	}
	if c.LLMRateLimit < 0 {
		return fmt.Errorf("LLM_RATE_LIMIT must not be negative")
	}

	if c.SessionsEnabled {
		if c.SessionTTL <= 0 {
			return fmt.Errorf("SESSION_TTL must be positive when sessions are enabled")
		}
		switch c.SessionStore {
		case SessionStoreFilesystem, SessionStoreS3:
		default:
			return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_upload_size", 0)
	v.SetDefault("llm_provider", ProviderGemini)
	v.SetDefault("llm_rate_limit", 0)
	v.SetDefault("google_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("openrouter_api_key", "")
	v.SetDefault("openrouter_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter_model", "openai/gpt-4o-mini")
	v.SetDefault("sessions_enabled", false)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("database_path", "data/speedminds.db")
	v.SetDefault("session_store", SessionStoreFilesystem)
	v.SetDefault("session_store_dir", "data/sessions")
	v.SetDefault("s3_endpoint", "localhost:9000")
	v.SetDefault("s3_access_key_id", "minioadmin")
	v.SetDefault("s3_secret_access_key", "minioadmin")
	v.SetDefault("s3_bucket_name", "speedminds-sessions")
	v.SetDefault("s3_use_ssl", false)
}

