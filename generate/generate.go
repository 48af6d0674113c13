// Package generate runs the whole pipeline for one module: parse, collect
// exports, compile each declaration, resolve guard references, and assemble
// the output document.
package generate

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/exports"
	"github.com/teranos/tsguard/guard"
	"github.com/teranos/tsguard/guardian"
	"github.com/teranos/tsguard/logger"
	"github.com/teranos/tsguard/syntax"
)

// DefaultParam is the guard parameter name used when none is configured.
const DefaultParam = "it"

// Diagnostic is re-exported so callers need not import guardian.
type Diagnostic = guardian.Diagnostic

// Options control a generation run.
type Options struct {
	// Param is the guard parameter name. Defaults to DefaultParam.
	Param string

	// Strict turns the first error diagnostic into a failed run.
	Strict bool

	// ModulePath overrides the module path in the re-export line.
	// Defaults to the parsed module's path.
	ModulePath string

	// Verbosity is the -v count. Compiler variant tracing is logged only
	// at logger.VerbosityTrace and above.
	Verbosity int
}

// Result is the outcome of a successful run.
type Result struct {
	Document    guardian.Document
	Diagnostics []Diagnostic
}

// Render returns the generated module text.
func (r *Result) Render() string {
	return guardian.Render(r.Document)
}

// Errors counts diagnostics of error severity.
func (r *Result) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == guardian.SeverityError {
			n++
		}
	}
	return n
}

// Generator runs the pipeline. It is not safe for concurrent use; each
// call to Generate is independent of the previous ones.
type Generator struct {
	opts     Options
	log      *zap.SugaredLogger
	compiler *guard.Compiler
}

// New creates a Generator. A nil log discards all output.
func New(opts Options, log *zap.SugaredLogger) *Generator {
	if opts.Param == "" {
		opts.Param = DefaultParam
	}
	log = logger.OrNop(log)

	var trace *zap.SugaredLogger
	if logger.ShouldOutput(opts.Verbosity, logger.OutputCompilerTrace) {
		trace = log.Named("guard")
	}
	return &Generator{
		opts:     opts,
		log:      log,
		compiler: guard.NewCompiler(trace),
	}
}

// GenerateFile reads and generates path.
func (g *Generator) GenerateFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return g.GenerateSource(path, source)
}

// GenerateSource parses source as the module at path and generates it.
func (g *Generator) GenerateSource(path string, source []byte) (*Result, error) {
	mod, err := syntax.Parse(path, source)
	if err != nil {
		return nil, err
	}
	return g.Generate(mod)
}

// Generate produces guards for every supported exported type of mod.
//
// Declarations that cannot be guarded are dropped with a diagnostic and the
// run continues, unless Options.Strict is set. Parse errors and malformed
// export clauses always fail the run.
func (g *Generator) Generate(mod *syntax.Module) (*Result, error) {
	start := time.Now()
	log := logger.ChildLogger(g.log, logger.FieldFile, mod.Path)

	collected, err := exports.Collect(mod, g.log.Named("exports"))
	if err != nil {
		return nil, err
	}

	run := &run{log: log}
	for _, skip := range collected.Skipped {
		severity := guardian.SeverityWarning
		if skip.Type {
			severity = guardian.SeverityError
		}
		run.report(skip.Name, skip.Construct, skip.Span.Line, skip.Span.Column, severity, skip.Err())
	}

	seen := make(map[string]bool, len(collected.Declarations))
	var guardians []guardian.Guardian
	for _, decl := range collected.Declarations {
		if seen[decl.Name] {
			err := errors.Mark(
				errors.Newf("duplicate declaration %q at %d:%d", decl.Name, decl.Span.Line, decl.Span.Column),
				errors.ErrDuplicateDeclaration)
			run.report(decl.Name, "", decl.Span.Line, decl.Span.Column, guardian.SeverityError, err)
			continue
		}
		seen[decl.Name] = true

		check, err := g.compiler.Compile(decl.Shape, g.opts.Param)
		if err != nil {
			if !errors.IsRecoverable(err) {
				return nil, errors.Wrapf(err, "failed to compile %s", decl.Name)
			}
			construct, line, column := "", decl.Span.Line, decl.Span.Column
			var ue *guard.UnsupportedError
			if errors.As(err, &ue) {
				construct = ue.Construct
				if ue.Span.Line > 0 {
					line, column = ue.Span.Line, ue.Span.Column
				}
			}
			run.report(decl.Name, construct, line, column, guardian.SeverityError, err)
			continue
		}

		guardians = append(guardians, guardian.Assemble(decl.Name, check))
	}

	guardians = run.resolve(guardians, collected, mod.Imports)

	if g.opts.Strict && run.firstError != nil {
		return nil, errors.WithHint(run.firstError, "run without --strict to skip declarations that cannot be guarded")
	}

	exportNames := make([]string, 0, len(collected.Exports))
	for _, e := range collected.Exports {
		exportNames = append(exportNames, e.String())
	}
	modulePath := g.opts.ModulePath
	if modulePath == "" {
		modulePath = mod.Path
	}

	result := &Result{
		Document: guardian.Document{
			ModulePath: modulePath,
			Exports:    exportNames,
			Param:      g.opts.Param,
			Guardians:  guardians,
		},
		Diagnostics: run.diagnostics,
	}

	log.Infow("generated guards",
		logger.FieldCount, len(guardians),
		"dropped", result.Errors(),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// run accumulates the diagnostics of one Generate call.
type run struct {
	log         *zap.SugaredLogger
	diagnostics []Diagnostic
	firstError  error
}

func (r *run) report(name, construct string, line, column int, severity guardian.Severity, err error) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Declaration: name,
		Kind:        errors.Kind(err),
		Construct:   construct,
		Message:     err.Error(),
		Line:        line,
		Column:      column,
		Severity:    severity,
	})

	if severity == guardian.SeverityError && r.firstError == nil {
		r.firstError = err
	}

	fields := []interface{}{
		logger.FieldDeclaration, name,
		logger.FieldErrorKind, errors.Kind(err),
		logger.FieldLine, line,
		logger.FieldColumn, column,
	}
	if construct != "" {
		fields = append(fields, logger.FieldConstruct, construct)
	}
	if severity == guardian.SeverityError {
		r.log.Warnw(fmt.Sprintf("skipped %s", describe(name)), fields...)
	} else {
		r.log.Infow(err.Error(), fields...)
	}
}

func describe(name string) string {
	if name == "" {
		return "export"
	}
	return name
}
