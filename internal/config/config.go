// Package config loads server settings from defaults, an optional config
// file, and environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved settings for one server process.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `mapstructure:"addr"`

	// APIToken is the bearer token required on evaluation routes. The
	// server refuses to start without one.
	APIToken string `mapstructure:"api_token"`

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Provider selects the generation backend: "openai" or "anthropic".
	Provider string `mapstructure:"provider"`

	// Model overrides the provider default model when non-empty.
	Model string `mapstructure:"model"`

	// APIKey authenticates against the provider. Falls back to the
	// provider's conventional environment variable when empty.
	APIKey string `mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint, for proxies and fakes.
	BaseURL string `mapstructure:"base_url"`

	// MaxTokens caps the generation response length.
	MaxTokens int `mapstructure:"max_tokens"`

	// RequestTimeout bounds a single provider call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// RequestsPerMinute rate-limits provider calls; 0 disables the limiter.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`

	// DBPath locates the sqlite audit database. Empty disables auditing.
	DBPath string `mapstructure:"db_path"`

	// OTLPEndpoint is the trace collector address. Empty disables export.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// Load resolves configuration. file may be empty, in which case only
// defaults and HART_* environment variables apply.
func Load(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8000")
	v.SetDefault("api_token", "")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("max_tokens", 300)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("requests_per_minute", 0)
	v.SetDefault("db_path", "hart.db")
	v.SetDefault("otlp_endpoint", "")

	v.SetEnvPrefix("HART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Conventional environment variables win only when the prefixed
	// settings are absent.
	if cfg.APIToken == "" {
		cfg.APIToken = os.Getenv("API_TOKEN")
	}
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	return cfg, nil
}
