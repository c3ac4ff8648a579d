package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/fotoctl/fotolia"
)

// EnvPrefix prefixes environment overrides, e.g. FOTOCTL_FOTOLIA_API_KEY.
const EnvPrefix = "FOTOCTL"

// Load loads the configuration from file and environment. A missing config
// file is not an error when the API key comes from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".fotoctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/fotoctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is listed so that
// environment overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	// Fotolia defaults
	v.SetDefault("fotolia.api_key", "")
	v.SetDefault("fotolia.base_url", fotolia.DefaultBaseURL)
	v.SetDefault("fotolia.version", fotolia.DefaultVersion)
	v.SetDefault("fotolia.connect_timeout", fotolia.DefaultConnectTimeout)
	v.SetDefault("fotolia.timeout", fotolia.DefaultTimeout)
	v.SetDefault("fotolia.language", "en_US")
	v.SetDefault("fotolia.login", "")
	v.SetDefault("fotolia.password", "")

	// Gateway defaults
	v.SetDefault("gateway.listen", "127.0.0.1:8085")
	v.SetDefault("gateway.cors_origins", []string{})
	v.SetDefault("gateway.download_hosts", []string{"*.fotolia.com", "*.ftcdn.net"})
	v.SetDefault("gateway.metrics", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	key := cfg.Fotolia.APIKey
	if key == "" || key == "your-api-key-here" {
		return fmt.Errorf("fotolia.api_key must be set to a valid API key")
	}
	if strings.Contains(key, ":") {
		return fmt.Errorf("fotolia.api_key must not contain ':'")
	}

	if u, err := url.Parse(cfg.Fotolia.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid fotolia.base_url: %s", cfg.Fotolia.BaseURL)
	}

	if cfg.Fotolia.ConnectTimeout <= 0 || cfg.Fotolia.Timeout <= 0 {
		return fmt.Errorf("fotolia timeouts must be positive")
	}
	if cfg.Fotolia.Timeout < time.Second {
		return fmt.Errorf("fotolia.timeout is too short: %s", cfg.Fotolia.Timeout)
	}

	if _, ok := fotolia.ParseLanguage(cfg.Fotolia.Language); !ok {
		return fmt.Errorf("invalid fotolia.language: %s", cfg.Fotolia.Language)
	}

	if (cfg.Fotolia.Login == "") != (cfg.Fotolia.Password == "") {
		return fmt.Errorf("fotolia.login and fotolia.password must be set together")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter preset '%s' is empty", name)
		}
	}

	return nil
}
