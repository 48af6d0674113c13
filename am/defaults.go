package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", DefaultInput)
	v.SetDefault("output", "")
	v.SetDefault("param", DefaultParam)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("strict", false)

	v.SetDefault("watch.debounce_ms", 200)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode
		panic(err)
	}
	return cfg
}

// GetParam returns the guard parameter name (default: it)
func (c *Config) GetParam() string {
	if c.Param == "" {
		return DefaultParam
	}
	return c.Param
}

// GetInput returns the input module path (default: test/test.ts)
func (c *Config) GetInput() string {
	if c.Input == "" {
		return DefaultInput
	}
	return c.Input
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: %s, Output: %s, Param: %s, Format: %s, Strict: %t}",
		c.Input, c.Output, c.Param, c.Format, c.Strict)
}
