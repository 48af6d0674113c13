package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/tsguard/guard"
)

type conformanceCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Guard  string   `yaml:"guard"`
	Check  string   `yaml:"check"`
	Accept []string `yaml:"accept"`
	Reject []string `yaml:"reject"`
}

func loadConformance(t *testing.T) []conformanceCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "conformance.yaml"))
	require.NoError(t, err)

	var cases []conformanceCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

// runtimeFor loads every guard of res into a fresh JavaScript runtime. The
// type annotations of the emitted module are dropped; the bodies are
// evaluated exactly as generated.
func runtimeFor(t *testing.T, res *Result) *goja.Runtime {
	t.Helper()
	var src strings.Builder
	for _, g := range res.Document.Guardians {
		fmt.Fprintf(&src, "function %s(%s) {\n\treturn %s;\n}\n",
			guard.GuardName(g.Typename), res.Document.Param, g.CheckCode)
	}

	vm := goja.New()
	_, err := vm.RunString(src.String())
	require.NoError(t, err, "generated guards do not evaluate:\n%s", src.String())
	return vm
}

func verdict(t *testing.T, vm *goja.Runtime, typename, value string) bool {
	t.Helper()
	v, err := vm.RunString(fmt.Sprintf("%s(%s)", guard.GuardName(typename), value))
	require.NoError(t, err, "evaluating %s(%s)", guard.GuardName(typename), value)

	// Guards return true or false, never the tested value itself.
	result, ok := v.Export().(bool)
	require.True(t, ok, "%s(%s) returned %v, not a boolean", guard.GuardName(typename), value, v)
	return result
}

func TestConformance(t *testing.T) {
	for _, tc := range loadConformance(t) {
		t.Run(tc.Name, func(t *testing.T) {
			res, err := New(Options{}, nil).GenerateSource("test/test.ts", []byte(tc.Source))
			require.NoError(t, err)
			require.Empty(t, res.Diagnostics)

			if tc.Check != "" {
				var code string
				for _, g := range res.Document.Guardians {
					if g.Typename == tc.Guard {
						code = g.CheckCode
					}
				}
				assert.Equal(t, tc.Check, code)
			}

			vm := runtimeFor(t, res)
			for _, value := range tc.Accept {
				assert.True(t, verdict(t, vm, tc.Guard, value), "%s should accept %s", tc.Guard, value)
			}
			for _, value := range tc.Reject {
				assert.False(t, verdict(t, vm, tc.Guard, value), "%s should reject %s", tc.Guard, value)
			}
		})
	}
}

func TestUnionOrderDoesNotChangeVerdicts(t *testing.T) {
	res, err := New(Options{}, nil).GenerateSource("test/test.ts", []byte(`
export type Forward = string | number[] | { a: boolean };
export type Backward = { a: boolean } | number[] | string;
`))
	require.NoError(t, err)
	require.Len(t, res.Document.Guardians, 2)
	assert.NotEqual(t, res.Document.Guardians[0].CheckCode, res.Document.Guardians[1].CheckCode)

	vm := runtimeFor(t, res)
	values := []string{
		`""`, `"x"`, `0`, `[]`, `[1, 2]`, `["x"]`, `({a: true})`, `({a: 1})`,
		`null`, `undefined`, `({})`, `[[1]]`, `true`,
	}
	for _, value := range values {
		assert.Equal(t,
			verdict(t, vm, "Forward", value),
			verdict(t, vm, "Backward", value),
			"verdicts differ for %s", value)
	}
}

func TestCustomParamEvaluates(t *testing.T) {
	res, err := New(Options{Param: "value"}, nil).GenerateSource("test/test.ts", []byte(
		"export interface P { xs: { [k: string]: string[] }[] }\n"))
	require.NoError(t, err)
	require.Len(t, res.Document.Guardians, 1)
	assert.True(t, strings.HasPrefix(res.Document.Guardians[0].CheckCode, `!!value && typeof value === "object"`))

	vm := runtimeFor(t, res)
	assert.True(t, verdict(t, vm, "P", `({xs: [{a: ["b"]}, {}]})`))
	assert.False(t, verdict(t, vm, "P", `({xs: [{a: "b"}]})`))
}
