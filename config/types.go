package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Fotolia FotoliaConfig `mapstructure:"fotolia"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FotoliaConfig holds API connection details and optional member credentials
type FotoliaConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Version        string        `mapstructure:"version"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Language       string        `mapstructure:"language"`
	Login          string        `mapstructure:"login"`
	Password       string        `mapstructure:"password"`
}

// HasCredentials reports whether a member login is configured
func (c FotoliaConfig) HasCredentials() bool {
	return c.Login != "" && c.Password != ""
}

// GatewayConfig configures `fotoctl serve`
type GatewayConfig struct {
	Listen        string   `mapstructure:"listen"`
	CORSOrigins   []string `mapstructure:"cors_origins"`
	DownloadHosts []string `mapstructure:"download_hosts"`
	Metrics       bool     `mapstructure:"metrics"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
