// Package exports walks the top level of a parsed module and collects the
// exported type declarations a guard can be generated for.
package exports

import (
	"go.uber.org/zap"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/logger"
	"github.com/teranos/tsguard/syntax"
	"github.com/teranos/tsguard/typeexpr"
)

// ExportKind distinguishes the forms an exported name can take.
type ExportKind int

const (
	ExportName ExportKind = iota
	ExportWildcard
	ExportDefault
)

// Export is one exported name of the module.
type Export struct {
	Kind ExportKind
	Name string
}

// String renders the export as it appears in an export list: the name,
// "*" for a wildcard re-export, or "default".
func (e Export) String() string {
	switch e.Kind {
	case ExportWildcard:
		return "*"
	case ExportDefault:
		return "default"
	default:
		return e.Name
	}
}

// DeclarationKind is the source form of a collected declaration.
type DeclarationKind string

const (
	KindAlias     DeclarationKind = "alias"
	KindInterface DeclarationKind = "interface"
)

// Declaration is an exported type with the shape its guard checks.
// Interfaces are converted to an object shape built from their members.
type Declaration struct {
	Name  string
	Kind  DeclarationKind
	Shape typeexpr.Expr
	Span  typeexpr.Span
}

// Skip records an export that produces no guard.
type Skip struct {
	Name      string
	Construct string
	Span      typeexpr.Span

	// Type is set when the skipped export is a type declaration, so a
	// guard for it was expected but cannot be generated.
	Type bool
}

// Err returns the skip as an error marked errors.ErrUnsupportedExport.
func (s Skip) Err() error {
	var err error
	if s.Name == "" {
		err = errors.Newf("unsupported export: %s at %d:%d", s.Construct, s.Span.Line, s.Span.Column)
	} else {
		err = errors.Newf("unsupported export %q: %s at %d:%d", s.Name, s.Construct, s.Span.Line, s.Span.Column)
	}
	return errors.Mark(err, errors.ErrUnsupportedExport)
}

// Result is everything Collect found, in source order.
type Result struct {
	Exports      []Export
	Declarations []Declaration
	Skipped      []Skip

	// Locals holds the names of non-exported type declarations.
	Locals []string
}

// Collect walks the statements of mod. Unsupported export forms are recorded
// in Result.Skipped and logged at debug level; the walk continues past them.
//
// An export statement that carries both an inline declaration and a
// specifier list is malformed and aborts the walk with an error marked
// errors.ErrMalformedExport.
func Collect(mod *syntax.Module, log *zap.SugaredLogger) (*Result, error) {
	if mod == nil {
		return nil, errors.AssertionFailedf("exports: nil module")
	}
	c := &collector{log: logger.OrNop(log), result: &Result{}}

	for _, stmt := range mod.Statements {
		switch stmt := stmt.(type) {
		case *syntax.LocalDeclaration:
			c.result.Locals = append(c.result.Locals, stmt.Name)
		case *syntax.ExportStatement:
			if err := c.export(stmt); err != nil {
				return nil, err
			}
		}
	}

	c.log.Debugw("collected exports",
		logger.FieldFile, mod.Path,
		logger.FieldCount, len(c.result.Declarations),
		"skipped", len(c.result.Skipped),
	)
	return c.result, nil
}

type collector struct {
	log    *zap.SugaredLogger
	result *Result
}

func (c *collector) export(stmt *syntax.ExportStatement) error {
	if stmt.Declaration != nil && len(stmt.Specifiers) > 0 {
		err := errors.Newf("malformed export clause at %d:%d: both a declaration and an export list",
			stmt.Span.Line, stmt.Span.Column)
		return errors.WithHint(errors.Mark(err, errors.ErrMalformedExport),
			"split the declaration and the export list into separate export statements")
	}

	switch {
	case stmt.Default:
		c.exported(Export{Kind: ExportDefault})
		c.skip(syntax.DeclarationName(stmt.Declaration), "default export", stmt.Span)
		return nil

	case stmt.Wildcard && stmt.Namespace != "":
		c.exported(Export{Kind: ExportName, Name: stmt.Namespace})
		c.skip(stmt.Namespace, "namespace re-export", stmt.Span)
		return nil

	case stmt.Wildcard:
		c.exported(Export{Kind: ExportWildcard})
		c.skip("", "wildcard re-export", stmt.Span)
		return nil

	case stmt.Namespace != "":
		c.exported(Export{Kind: ExportName, Name: stmt.Namespace})
		c.skip(stmt.Namespace, "global namespace export", stmt.Span)
		return nil

	case len(stmt.Specifiers) > 0:
		for _, spec := range stmt.Specifiers {
			c.exported(Export{Kind: ExportName, Name: spec.Exported()})
			c.skip(spec.Exported(), "export specifier", stmt.Span)
		}
		return nil

	case stmt.Declaration == nil:
		// export {};
		return nil
	}

	c.declaration(stmt.Declaration)
	return nil
}

func (c *collector) declaration(decl syntax.Declaration) {
	switch d := decl.(type) {
	case *syntax.TypeAlias:
		c.exported(Export{Kind: ExportName, Name: d.Name})
		if d.Generic {
			c.skipType(d.Name, "generic type alias", d.Pos())
			return
		}
		c.result.Declarations = append(c.result.Declarations, Declaration{
			Name:  d.Name,
			Kind:  KindAlias,
			Shape: d.Type,
			Span:  d.Pos(),
		})

	case *syntax.Interface:
		c.exported(Export{Kind: ExportName, Name: d.Name})
		switch {
		case d.Generic:
			c.skipType(d.Name, "generic interface", d.Pos())
			return
		case len(d.Extends) > 0:
			c.skipType(d.Name, "interface with extends clause", d.Pos())
			return
		}
		shape := typeexpr.NewObject(d.Members...)
		shape.Span = d.Pos()
		c.result.Declarations = append(c.result.Declarations, Declaration{
			Name:  d.Name,
			Kind:  KindInterface,
			Shape: shape,
			Span:  d.Pos(),
		})

	case *syntax.Variable:
		for _, name := range d.Names {
			c.exported(Export{Kind: ExportName, Name: name})
			c.skip(name, d.Construct(), d.Pos())
		}

	default:
		name := syntax.DeclarationName(decl)
		if name != "" {
			c.exported(Export{Kind: ExportName, Name: name})
		}
		c.skip(name, decl.Construct(), decl.Pos())
	}
}

func (c *collector) exported(e Export) {
	c.result.Exports = append(c.result.Exports, e)
}

func (c *collector) skip(name, construct string, span typeexpr.Span) {
	c.record(Skip{Name: name, Construct: construct, Span: span})
}

func (c *collector) skipType(name, construct string, span typeexpr.Span) {
	c.record(Skip{Name: name, Construct: construct, Span: span, Type: true})
}

func (c *collector) record(s Skip) {
	c.result.Skipped = append(c.result.Skipped, s)
	c.log.Debugw("skipping export",
		logger.FieldExport, s.Name,
		logger.FieldConstruct, s.Construct,
		logger.FieldLine, s.Span.Line,
	)
}
