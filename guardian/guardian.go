// Package guardian assembles compiled checks into guard functions and writes
// the generated module.
package guardian

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/tsguard/guard"
)

// Guardian is one generated guard: the declaration it checks and the
// compiled check expression.
type Guardian struct {
	Typename   string   `json:"typename"`
	CheckCode  string   `json:"check"`
	References []string `json:"references,omitempty"`
}

// Assemble pairs a declaration name with its compiled check.
func Assemble(name string, check guard.Check) Guardian {
	refs := make([]string, len(check.References))
	copy(refs, check.References)
	return Guardian{Typename: name, CheckCode: check.Code, References: refs}
}

// Function renders the guard as a TypeScript function with param as the
// parameter name. The check must have been compiled against the same name.
func (g Guardian) Function(param string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function %s(%s: any): %s is %s {\n", guard.GuardName(g.Typename), param, param, g.Typename)
	fmt.Fprintf(&sb, "\treturn %s;\n", g.CheckCode)
	sb.WriteString("}")
	return sb.String()
}

// Document is a complete generated module.
type Document struct {
	// ModulePath is the module the export list re-exports from.
	ModulePath string

	// Exports are the rendered export names of the source module, in
	// encounter order.
	Exports []string

	// Param is the guard parameter name the checks were compiled against.
	Param string

	Guardians []Guardian
}

// Emit writes doc: the re-export line, a blank line, then each guard
// function in discovery order separated by blank lines.
func Emit(w io.Writer, doc Document) error {
	param := doc.Param
	if param == "" {
		param = "it"
	}

	header := "export {} from " + quote(doc.ModulePath)
	if len(doc.Exports) > 0 {
		header = fmt.Sprintf("export { %s } from %s", strings.Join(doc.Exports, ", "), quote(doc.ModulePath))
	}
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return err
	}

	for _, g := range doc.Guardians {
		if _, err := io.WriteString(w, "\n"+g.Function(param)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Render returns what Emit would write.
func Render(doc Document) string {
	var sb strings.Builder
	_ = Emit(&sb, doc)
	return sb.String()
}

// quote renders a module specifier. Specifiers always use forward slashes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `/`), `"`, `\"`) + `"`
}
