package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(0), cfg.MaxUploadSize)
	assert.False(t, cfg.SessionsEnabled)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENROUTER_MODEL", "anthropic/claude-3.5-haiku")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSIONS_ENABLED", "true")
	t.Setenv("SESSION_TTL", "5m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ProviderOpenRouter, cfg.LLMProvider)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.OpenRouterModel)
	assert.True(t, cfg.SessionsEnabled)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nupload_dir: /tmp/speedminds\nllm_rate_limit: 2.5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "/tmp/speedminds", cfg.UploadDir)
	assert.InDelta(t, 2.5, cfg.LLMRateLimit, 0.0001)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "gemini without key",
			cfg:     Config{LLMProvider: ProviderGemini},
			wantErr: "GOOGLE_API_KEY is required",
		},
		{
			name:    "openrouter without key",
			cfg:     Config{LLMProvider: ProviderOpenRouter},
			wantErr: "OPENROUTER_API_KEY is required",
		},
		{
			name:    "unknown provider",
			cfg:     Config{LLMProvider: "mystery"},
			wantErr: "unknown LLM_PROVIDER",
		},
		{
			name:    "unknown session store",
			cfg:     Config{LLMProvider: ProviderGemini, GoogleAPIKey: "k", SessionsEnabled: true, SessionTTL: time.Minute, SessionStore: "tape"},
			wantErr: "unknown SESSION_STORE",
		},
		{
			name:    "zero session ttl",
			cfg:     Config{LLMProvider: ProviderGemini, GoogleAPIKey: "k", SessionsEnabled: true, SessionStore: SessionStoreFilesystem},
			wantErr: "SESSION_TTL must be positive",
		},
		{
			name: "valid",
			cfg:  Config{LLMProvider: ProviderGemini, GoogleAPIKey: "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
