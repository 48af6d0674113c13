package guardian

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/guard"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"   // A type declaration produced no guard
	SeverityWarning Severity = "warning" // Nothing to guard, or a guard that may fail at runtime
)

// Diagnostic describes a declaration that was skipped, or a guard that was
// emitted with a caveat.
type Diagnostic struct {
	Declaration string   `json:"declaration,omitempty"`
	Kind        string   `json:"kind"`
	Construct   string   `json:"construct,omitempty"`
	Message     string   `json:"message"`
	Line        int      `json:"line,omitempty"`
	Column      int      `json:"column,omitempty"`
	Severity    Severity `json:"severity"`
}

// Report is the machine-readable form of a generation run.
type Report struct {
	Module      string        `json:"module"`
	Exports     []string      `json:"exports"`
	Param       string        `json:"param"`
	Guardians   []ReportGuard `json:"guardians"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Source      string        `json:"source,omitempty"`
}

// ReportGuard is one guardian in a Report, including its rendered function.
type ReportGuard struct {
	Name       string   `json:"name"`
	Guard      string   `json:"guard"`
	Check      string   `json:"check"`
	References []string `json:"references"`
	Function   string   `json:"function"`
}

// NewReport builds the report for doc. When withSource is set, the full
// rendered module is included.
func NewReport(doc Document, diags []Diagnostic, withSource bool) Report {
	param := doc.Param
	if param == "" {
		param = "it"
	}

	r := Report{
		Module:      doc.ModulePath,
		Exports:     nonNil(doc.Exports),
		Param:       param,
		Guardians:   make([]ReportGuard, 0, len(doc.Guardians)),
		Diagnostics: diags,
	}
	if r.Diagnostics == nil {
		r.Diagnostics = []Diagnostic{}
	}
	for _, g := range doc.Guardians {
		r.Guardians = append(r.Guardians, ReportGuard{
			Name:       g.Typename,
			Guard:      guard.GuardName(g.Typename),
			Check:      g.CheckCode,
			References: nonNil(g.References),
			Function:   g.Function(param),
		})
	}
	if withSource {
		r.Source = Render(doc)
	}
	return r
}

// EmitJSON writes the report for doc as indented JSON.
func EmitJSON(w io.Writer, doc Document, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(doc, diags, true)); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
