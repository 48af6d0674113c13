// Package am loads tsguard configuration ("I am").
//
// Sources, lowest precedence first: built-in defaults, the project
// tsguard.toml (found by walking up from the working directory), and
// TSGUARD_* environment variables. Command line flags override all of them.
package am

// Config represents the tsguard configuration
type Config struct {
	Input  string      `mapstructure:"input" toml:"input" json:"input" yaml:"input"`     // Module to generate guards for
	Output string      `mapstructure:"output" toml:"output" json:"output" yaml:"output"` // Output file; empty writes to stdout
	Param  string      `mapstructure:"param" toml:"param" json:"param" yaml:"param"`     // Guard parameter name
	Format string      `mapstructure:"format" toml:"format" json:"format" yaml:"format"` // text or json
	Strict bool        `mapstructure:"strict" toml:"strict" json:"strict" yaml:"strict"` // Fail instead of skipping declarations
	Watch  WatchConfig `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log    LogConfig   `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// WatchConfig configures --watch
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // Quiet period before regenerating (0 = default)
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`                     // Structured JSON logs on stderr
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"` // Same scale as -v count
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Defaults
const (
	ConfigFileName = "tsguard.toml"
	DefaultInput   = "test/test.ts"
	DefaultParam   = "it"
	DefaultFormat  = FormatText
	EnvPrefix      = "TSGUARD"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
