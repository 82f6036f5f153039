package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. ZAMMADCTL_ZAMMAD_PASSWORD for zammad.password
const EnvPrefix = "ZAMMADCTL"

// Load loads the configuration from file
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
			v.AddConfigPath(filepath.Join(home, ".zammadctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/zammadctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Zammad defaults
	v.SetDefault("zammad.url", "http://localhost:3000")
	v.SetDefault("zammad.username", "")
	v.SetDefault("zammad.password", "")
	v.SetDefault("zammad.timeout", "30s")
	v.SetDefault("zammad.user_agent", "")

	v.SetDefault("filter.default_expression", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/zammadctl")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Zammad.URL == "" {
		return fmt.Errorf("zammad.url is required")
	}

	u, err := url.Parse(cfg.Zammad.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("zammad.url must be an http(s) URL: %s", cfg.Zammad.URL)
	}

	if cfg.Zammad.Username == "" {
		return fmt.Errorf("zammad.username is required")
	}

	if cfg.Zammad.Password == "" || cfg.Zammad.Password == "your-password-here" {
		return fmt.Errorf("zammad.password must be set")
	}

	if cfg.Zammad.Timeout < 0 {
		return fmt.Errorf("zammad.timeout must not be negative: %s", cfg.Zammad.Timeout)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s has an empty expression", name)
		}
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

	if cfg.Update.Repository != "" && strings.Count(cfg.Update.Repository, "/") != 1 {
		return fmt.Errorf("update.repository must look like owner/name: %s", cfg.Update.Repository)
	}

	return nil
}
