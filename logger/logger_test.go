package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			var buf bytes.Buffer
			require.NoError(t, InitializeWithWriter(tt.jsonOutput, VerbosityInfo, &buf))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Infow("generated guards", FieldCount, 3)
			Cleanup()
			assert.Contains(t, buf.String(), "generated guards")
		})
	}
}

func TestVerbosityFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(false, VerbosityUser, &buf))

	Debugw("visiting union")
	Infow("summary")
	Warnw("skipped declaration", FieldDeclaration, "Pair")

	out := stripANSI(buf.String())
	assert.NotContains(t, out, "visiting union")
	assert.NotContains(t, out, "summary")
	assert.Contains(t, out, "skipped declaration")
	assert.Contains(t, out, "declaration=Pair")
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
}

func TestShouldOutput(t *testing.T) {
	assert.False(t, ShouldOutput(VerbosityInfo, OutputConfig))
	assert.True(t, ShouldOutput(VerbosityDebug, OutputConfig))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCompilerTrace))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputCompilerTrace))
	assert.True(t, ShouldOutput(VerbosityTrace+2, OutputCompilerTrace))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(99)))
}

// The console encoder must never silently discard fields, whether they come
// from the entry or from a child logger's context.
func TestMinimalEncoderKeepsAllFields(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(newMinimalEncoder(), zapcore.AddSync(&buf), zapcore.DebugLevel)
	log := zap.New(core).Sugar().Named("guard")

	child := ChildLogger(log, FieldDeclaration, "Config")
	child.Warnw("unsupported construct",
		FieldConstruct, "tuple",
		FieldLine, 12,
		"custom_field_xyz", "important",
		FieldError, errors.New("boom"),
	)

	out := stripANSI(buf.String())
	for _, want := range []string{
		"WARN",
		"guard",
		"unsupported construct",
		"declaration=Config",
		"construct=tuple",
		"line=12",
		"custom_field_xyz=important",
		"error=boom",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMinimalEncoderCloneIsolatesContext(t *testing.T) {
	enc := newMinimalEncoder()
	enc.AddString("a", "1")
	clone := enc.Clone().(*minimalEncoder)
	clone.AddString("b", "2")

	_, ok := enc.Fields["b"]
	assert.False(t, ok)

	buf, err := clone.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "m"}, nil)
	require.NoError(t, err)
	out := stripANSI(buf.String())
	assert.Contains(t, out, "a=1 b=2")
	assert.NotContains(t, out, "INFO")
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, gruvbox, colors())

	SetTheme("not-a-theme")
	assert.Equal(t, gruvbox, colors())

	SetTheme("everforest")
	assert.Equal(t, everforest, colors())
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	log := zap.NewNop().Sugar()
	assert.Same(t, log, OrNop(log))
}
