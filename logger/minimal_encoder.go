package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Color palettes for different themes
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	fg        string
	time      string
	component string
	key       string
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	component: "\x1b[38;5;208m",
	key:       "\x1b[38;5;109m",
	number:    "\x1b[38;5;175m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (natural greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	component: "\x1b[38;5;108m",
	key:       "\x1b[38;5;109m",
	number:    "\x1b[38;5;108m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

// Current active theme
var currentTheme = "everforest"

var bufferPool = buffer.NewPool()

// SetTheme configures the color scheme for log output
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// minimalEncoder implements a calm, compact console encoder with theme support.
// Format: "13:04:35  WARN  guard  skipped declaration  declaration=Pair construct=tuple"
//
// Context fields added through With() are kept in the embedded map encoder
// and printed before the entry's own fields. The only field not printed is
// errorVerbose (stack traces); use JSON output to see it.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for non-INFO levels
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	entryFields := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(entryFields)
	}

	rendered := append(formatFields(enc.Fields), formatFields(entryFields.Fields)...)
	if len(rendered) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(rendered, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// formatFields renders key=value pairs in key order
func formatFields(fields map[string]interface{}) []string {
	if len(fields) == 0 {
		return nil
	}
	c := colors()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "errorVerbose" {
			continue
		}
		value := fields[k]
		valueColor := c.fg
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			valueColor = c.number
		}
		out = append(out, c.key+k+colorReset+"="+valueColor+fmt.Sprint(value)+colorReset)
	}
	return out
}

// levelColorString returns bold + colored + background for non-INFO levels
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.DebugLevel:
		return c.key + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + c.errBg + c.err + "ERROR" + colorReset
	default:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	}
}
