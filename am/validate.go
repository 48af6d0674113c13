package am

import (
	"regexp"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/guard"
)

// binderName matches the names generated guards bind array elements and
// index-signature entries to.
var binderName = regexp.MustCompile(`^_[ekv]\d+$`)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input cannot be empty")
	}

	// Param: empty = default "it"
	if c.Param != "" {
		if !guard.IsIdentifier(c.Param) {
			return errors.Newf("param must be a JavaScript identifier, got %q", c.Param)
		}
		if binderName.MatchString(c.Param) {
			return errors.WithHint(
				errors.Newf("param %q collides with generated binder names", c.Param),
				"choose a name that is not _e, _k or _v followed by digits")
		}
	}

	switch c.Format {
	case "", FormatText, FormatJSON:
	default:
		return errors.Newf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}

	// Debounce: 0 = default, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
