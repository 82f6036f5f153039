package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Zammad  ZammadConfig  `mapstructure:"zammad"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// ZammadConfig holds Zammad API connection details
type ZammadConfig struct {
	URL       string        `mapstructure:"url"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FilterConfig contains ticket filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetFilter `mapstructure:"presets"`
}

// PresetFilter is a named filter expression
type PresetFilter struct {
	Description string `mapstructure:"description"`
	Expression  string `mapstructure:"expression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls the self-update command
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
