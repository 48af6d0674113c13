// Package syntax parses a TypeScript module and lowers its top level into
// the statements tsguard cares about: exports, local type declarations and
// imported names. Type annotations are lowered to typeexpr values.
package syntax

import (
	"github.com/teranos/tsguard/typeexpr"
)

// Module is the lowered top level of one source file.
type Module struct {
	Path       string
	Statements []Statement

	// Imports holds every local name bound by an import statement or an
	// import alias, in source order.
	Imports []string
}

// Statement is a top-level statement: *ExportStatement or *LocalDeclaration.
type Statement interface {
	Pos() typeexpr.Span
	statement()
}

// ExportStatement is any form of `export ...`.
//
// The fields are not mutually exclusive at this level; the export collector
// decides which combinations are meaningful.
type ExportStatement struct {
	Span typeexpr.Span

	// Declaration is the inline declaration of `export <decl>`, or nil.
	Declaration Declaration

	// Specifiers is the clause of `export { a, b as c }`.
	Specifiers []Specifier

	// Wildcard is set for `export * from "m"` and `export * as ns from "m"`.
	Wildcard  bool
	Namespace string

	// Default is set for `export default ...` and `export = ...`.
	Default bool

	// Source is the module specifier of a re-export, without quotes.
	Source string
}

func (s *ExportStatement) Pos() typeexpr.Span { return s.Span }
func (*ExportStatement) statement()           {}

// Specifier is one entry of an export clause.
type Specifier struct {
	Name  string
	Alias string
}

// Exported returns the name the specifier is exported under.
func (s Specifier) Exported() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// LocalDeclaration is a non-exported top-level declaration. Only its name is
// kept: a guard may still reference it, but no guard is generated for it.
type LocalDeclaration struct {
	Span      typeexpr.Span
	Name      string
	Construct string
}

func (s *LocalDeclaration) Pos() typeexpr.Span { return s.Span }
func (*LocalDeclaration) statement()           {}

// Declaration is the declaration carried by an export statement.
type Declaration interface {
	Pos() typeexpr.Span

	// Construct is a short human description, used in diagnostics.
	Construct() string

	declaration()
}

type declBase struct {
	Span typeexpr.Span
}

func (d declBase) Pos() typeexpr.Span { return d.Span }
func (declBase) declaration()         {}

// TypeAlias is `type Name = T`.
type TypeAlias struct {
	declBase
	Name    string
	Generic bool
	Type    typeexpr.Expr
}

func (*TypeAlias) Construct() string { return "type alias" }

// Interface is `interface Name extends ... { members }`.
type Interface struct {
	declBase
	Name    string
	Generic bool
	Extends []string
	Members []typeexpr.Member
}

func (*Interface) Construct() string { return "interface" }

// Function is a function declaration or overload signature.
type Function struct {
	declBase
	Name string
}

func (*Function) Construct() string { return "function" }

// Class is a class or abstract class declaration.
type Class struct {
	declBase
	Name string
}

func (*Class) Construct() string { return "class" }

// Enum is an enum or const enum declaration.
type Enum struct {
	declBase
	Name string
}

func (*Enum) Construct() string { return "enum" }

// Namespace is `namespace N {}` or `module N {}`.
type Namespace struct {
	declBase
	Name string
}

func (*Namespace) Construct() string { return "namespace" }

// ImportEquals is `import A = B.C`.
type ImportEquals struct {
	declBase
	Name string
}

func (*ImportEquals) Construct() string { return "import alias" }

// Variable is a const, let or var declaration. Destructured is set when any
// declarator binds a pattern; Names then holds every bound identifier.
type Variable struct {
	declBase
	Names        []string
	Destructured bool
}

func (v *Variable) Construct() string {
	if v.Destructured {
		return "destructured variable"
	}
	return "variable"
}

// Other is a declaration form the lowering does not model.
type Other struct {
	declBase
	Kind string
}

func (o *Other) Construct() string { return o.Kind }

// DeclarationName returns the declared name, or "" for declarations that
// bind zero or several names.
func DeclarationName(d Declaration) string {
	switch d := d.(type) {
	case *TypeAlias:
		return d.Name
	case *Interface:
		return d.Name
	case *Function:
		return d.Name
	case *Class:
		return d.Name
	case *Enum:
		return d.Name
	case *Namespace:
		return d.Name
	case *ImportEquals:
		return d.Name
	case *Variable:
		if len(d.Names) == 1 && !d.Destructured {
			return d.Names[0]
		}
	}
	return ""
}
