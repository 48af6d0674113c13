package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	info := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-01", Version: "dev"}
	assert.Equal(t, "tsguard dev (commit 0123456, built 2026-01-01)", info.String())

	info.Version = "v0.3.0"
	info.Modified = true
	assert.Equal(t, "tsguard v0.3.0 (commit 0123456, modified, built 2026-01-01)", info.String())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
	assert.Equal(t, "abcdef1", Info{CommitHash: "abcdef1234"}.Short())
}

func TestGet(t *testing.T) {
	info := Get("tree-sitter-typescript")
	assert.Contains(t, info.Grammar, "tree-sitter-typescript")
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestWithBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/teranos/tsguard", Version: "v0.4.1"},
		Deps: []*debug.Module{
			{Path: ParserModule, Version: "v0.25.0"},
			{Path: GrammarModule, Version: "v0.23.2", Replace: &debug.Module{Path: GrammarModule, Version: "v0.23.3"}},
			{Path: "go.uber.org/zap", Version: "v1.27.1"},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "feedfacecafebeef"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev", Grammar: "fallback"}.withBuildInfo(bi)
	assert.Equal(t, "v0.4.1", info.Version)
	assert.Equal(t, "feedfacecafebeef", info.CommitHash)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildTime)
	assert.True(t, info.Modified)
	assert.Equal(t, "go-tree-sitter v0.25.0", info.Parser)
	assert.Equal(t, "tree-sitter-typescript v0.23.3", info.Grammar)
}

func TestWithBuildInfoKeepsLinkerValues(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "feedface"}},
	}

	info := Info{CommitHash: "0123456789", BuildTime: "2026-01-01", Version: "dev", Grammar: "fallback"}.withBuildInfo(bi)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "0123456789", info.CommitHash)
	assert.Equal(t, "fallback", info.Grammar)
	assert.Empty(t, info.Parser)
}
