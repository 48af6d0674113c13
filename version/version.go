// Package version reports how the tsguard binary was built.
//
// Values set through ldflags win. Anything left at its placeholder is filled
// from the module build information the Go toolchain embeds, so a plain
// `go install` still reports its module version, VCS revision and the
// parser versions it was linked against.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Modules whose versions are reported alongside the binary's own.
const (
	ParserModule  = "github.com/tree-sitter/go-tree-sitter"
	GrammarModule = "github.com/tree-sitter/tree-sitter-typescript"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	Modified   bool   `json:"modified,omitempty"`
	Parser     string `json:"parser,omitempty"`
	Grammar    string `json:"grammar"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information. grammar names the parser
// grammar to report when the build information does not list it.
func Get(grammar string) Info {
	info := Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		Grammar:    grammar,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

// withBuildInfo fills placeholder fields from bi.
func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.CommitHash == "dev" {
				i.CommitHash = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}

	for _, dep := range bi.Deps {
		if dep.Replace != nil {
			dep = dep.Replace
		}
		switch dep.Path {
		case ParserModule:
			i.Parser = "go-tree-sitter " + dep.Version
		case GrammarModule:
			i.Grammar = "tree-sitter-typescript " + dep.Version
		}
	}
	return i
}

// String returns a human-readable version string
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tsguard %s (commit %s", i.Version, i.Short())
	if i.Modified {
		b.WriteString(", modified")
	}
	fmt.Fprintf(&b, ", built %s)", i.BuildTime)
	return b.String()
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
