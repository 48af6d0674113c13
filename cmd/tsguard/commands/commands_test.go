package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tsguard/guardian"
)

const typesSource = `export type Mode = "a" | "b";

export interface User {
  id: number;
  mode: Mode;
}
`

// workspace creates a temporary project holding src/types.ts and makes it
// the working directory, so no tsguard.toml from outside is discovered.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "types.ts"), []byte(typesSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsguard.toml"), []byte("input = \"src/types.ts\"\n"), 0o644))
	t.Chdir(dir)
	return dir
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGenerateToStdout(t *testing.T) {
	workspace(t)

	code, stdout, stderr := run()
	require.Equal(t, ExitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, `export { Mode, User } from "src/types.ts"`), stdout)
	assert.Contains(t, stdout, "function isMode(it: any): it is Mode {\n\treturn it === \"a\" || it === \"b\";\n}")
	assert.Contains(t, stdout, "isMode(it.mode)")
}

func TestGenerateExplicitInputAndParam(t *testing.T) {
	dir := workspace(t)
	other := filepath.Join(dir, "other.ts")
	require.NoError(t, os.WriteFile(other, []byte("export type N = number;\n"), 0o644))

	code, stdout, stderr := run(other, "--param", "value")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "function isN(value: any): value is N {")
}

func TestGenerateToFile(t *testing.T) {
	dir := workspace(t)

	code, stdout, stderr := run("-o", "src/gen/guards.ts")
	require.Equal(t, ExitOK, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(dir, "src", "gen", "guards.ts"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `export { Mode, User } from "../types.ts"`), string(data))
}

func TestGenerateJSON(t *testing.T) {
	workspace(t)

	code, stdout, stderr := run("--format", "json")
	require.Equal(t, ExitOK, code, stderr)

	var report guardian.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, []string{"Mode", "User"}, report.Exports)
	require.Len(t, report.Guardians, 2)
	assert.Equal(t, []string{"Mode"}, report.Guardians[1].References)
}

func TestGenerateParseError(t *testing.T) {
	dir := workspace(t)
	bad := filepath.Join(dir, "bad.ts")
	require.NoError(t, os.WriteFile(bad, []byte("export type A = number;\nexport type = ;\n"), 0o644))

	code, stdout, stderr := run(bad)
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "bad.ts:2:")
	assert.Contains(t, stderr, "   2 | export type = ;")
}

func TestGenerateStrict(t *testing.T) {
	dir := workspace(t)
	input := filepath.Join(dir, "pair.ts")
	require.NoError(t, os.WriteFile(input, []byte("export type Pair = [string, number];\n"), 0o644))

	code, stdout, stderr := run(input)
	assert.Equal(t, ExitOK, code, stderr)
	assert.NotContains(t, stdout, "function")
	assert.Contains(t, stderr, "skipped Pair")

	code, stdout, stderr = run(input, "--strict")
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unsupported type construct: tuple")
	assert.Contains(t, stderr, "hint:")
}

func TestCompilerTraceNeedsTripleVerbose(t *testing.T) {
	workspace(t)

	for _, tc := range []struct {
		flag  string
		trace bool
	}{
		{"-v", false},
		{"-vv", false},
		{"-vvv", true},
	} {
		code, _, stderr := run(tc.flag)
		require.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, tc.trace, strings.Contains(stderr, "variant"), "%s: %s", tc.flag, stderr)
	}

	_, _, stderr := run("-vv")
	assert.Contains(t, stderr, "effective config")
	_, _, stderr = run("-v")
	assert.NotContains(t, stderr, "effective config")
}

func TestInvalidConfiguration(t *testing.T) {
	workspace(t)

	code, _, stderr := run("--param", "_e0")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "collides with generated binder names")

	code, _, _ = run("--format", "xml")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = run("--no-such-flag")
	assert.Equal(t, ExitUsage, code)
}

func TestCheck(t *testing.T) {
	dir := workspace(t)

	code, _, stderr := run("-o", "src/guards.ts")
	require.Equal(t, ExitOK, code, stderr)

	code, stdout, stderr := run("check", "--against", "src/guards.ts")
	assert.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "✓ src/guards.ts is up to date")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "types.ts"),
		[]byte(typesSource+"export type Extra = boolean;\n"), 0o644))

	code, stdout, stderr = run("check", "--against", "src/guards.ts")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "✗ src/guards.ts is out of date (first difference at line 1)")
	assert.Contains(t, stderr, "tsguard src/types.ts -o src/guards.ts")
}

func TestFirstDifference(t *testing.T) {
	assert.Equal(t, 2, firstDifference([]byte("a\nb\n"), []byte("a\nc\n")))
	assert.Equal(t, 2, firstDifference([]byte("a\n"), []byte("a\nb\n")))
	assert.Equal(t, 3, firstDifference([]byte("a\nb\nc"), []byte("a\nb\n")))
}

func TestConfigShow(t *testing.T) {
	workspace(t)

	code, stdout, stderr := run("config", "show")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "# tsguard configuration")
	assert.Contains(t, stdout, "input = 'src/types.ts'")

	code, stdout, stderr = run("config", "show", "--format", "json", "--param", "v")
	require.Equal(t, ExitOK, code, stderr)
	var shown map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "v", shown["param"])
	assert.Equal(t, "text", shown["format"])

	code, stdout, stderr = run("config", "show", "--format", "yaml")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "input: src/types.ts")

	code, _, _ = run("config", "show", "--format", "ini")
	assert.Equal(t, ExitUsage, code)
}

func TestConfigUnknownKeysWarn(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsguard.toml"),
		[]byte("input = \"src/types.ts\"\nparm = \"x\"\n"), 0o644))

	code, _, stderr := run()
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, "unknown config key")
	assert.Contains(t, stderr, "parm")
}

func TestConfigInit(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, "conf", "tsguard.toml")

	code, stdout, stderr := run("config", "init", path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "✓ Wrote")
	_, err := os.Stat(path)
	assert.NoError(t, err)

	code, _, stderr = run("config", "init", path)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "--force")

	code, _, stderr = run("config", "init", path, "--force")
	assert.Equal(t, ExitOK, code, stderr)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run("version")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "tsguard ")
	assert.Contains(t, stdout, "Grammar: tree-sitter-typescript")

	code, stdout, _ = run("version", "--json")
	require.Equal(t, ExitOK, code)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["grammar"])
}

func TestModulePath(t *testing.T) {
	assert.Equal(t, "src/types.ts", modulePath("src/types.ts", ""))
	assert.Equal(t, "./types.ts", modulePath("src/types.ts", "src/guards.ts"))
	assert.Equal(t, "../types.ts", modulePath("src/types.ts", "src/gen/guards.ts"))
	assert.Equal(t, "./src/types.ts", modulePath("src/types.ts", "guards.ts"))
}
