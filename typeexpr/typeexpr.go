// Package typeexpr is the in-memory model of a TypeScript type expression.
//
// The variant set is closed: every type the parser lowers is one of the
// structs in this file, and Unsupported stands in for every grammar form
// the guard compiler does not handle. Values are immutable after
// construction and owned by the declaration that contains them.
package typeexpr

// Kind identifies the variant of a type expression.
type Kind int

const (
	KindPrimitive   Kind = iota // number, string, boolean, object
	KindLiteral                 // true, false, "text"
	KindArray                   // T[], Array<T>
	KindUnion                   // A | B
	KindObject                  // interface body or { ... } literal
	KindReference               // named type
	KindUnsupported             // anything else
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindLiteral:
		return "Literal"
	case KindArray:
		return "Array"
	case KindUnion:
		return "Union"
	case KindObject:
		return "Object"
	case KindReference:
		return "Reference"
	case KindUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Span is a 1-based source position.
type Span struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Expr is a type expression.
type Expr interface {
	// Kind returns the variant for type switching.
	Kind() Kind

	// Pos returns where the expression starts in the source.
	Pos() Span

	// Ensure only types in this package can implement Expr.
	sealed()
}

type exprBase struct {
	Span Span
}

func (b exprBase) Pos() Span { return b.Span }
func (exprBase) sealed()     {}

// PrimitiveKind is the keyword of a Primitive.
type PrimitiveKind string

const (
	Number  PrimitiveKind = "number"
	String  PrimitiveKind = "string"
	Boolean PrimitiveKind = "boolean"
	Object  PrimitiveKind = "object"
)

// Primitive is one of the supported keyword types.
type Primitive struct {
	exprBase
	Name PrimitiveKind
}

func (*Primitive) Kind() Kind { return KindPrimitive }

// LiteralKind distinguishes boolean from string literals.
type LiteralKind int

const (
	LiteralBoolean LiteralKind = iota
	LiteralString
)

// Literal is a boolean or string literal type.
// For strings, Text is the source text between the quotes, verbatim.
type Literal struct {
	exprBase
	Literal LiteralKind
	Bool    bool
	Text    string
}

func (*Literal) Kind() Kind { return KindLiteral }

// Array is a homogeneous array of Element.
type Array struct {
	exprBase
	Element Expr
}

func (*Array) Kind() Kind { return KindArray }

// Union holds at least one member; nested unions are flattened.
type Union struct {
	exprBase
	Members []Expr
}

func (*Union) Kind() Kind { return KindUnion }

// ObjectShape is an object type assembled from an interface body or an
// inline object literal type.
type ObjectShape struct {
	exprBase
	Members []Member
}

func (*ObjectShape) Kind() Kind { return KindObject }

// Reference names another type; it compiles to a call of that type's guard.
type Reference struct {
	exprBase
	Name string
}

func (*Reference) Kind() Kind { return KindReference }

// Unsupported records a type construct outside the supported set.
// Construct is a short human name such as "tuple" or "intersection".
type Unsupported struct {
	exprBase
	Construct string
}

func (*Unsupported) Kind() Kind { return KindUnsupported }

// Member is one entry of an ObjectShape.
type Member interface {
	Pos() Span
	member()
}

type memberBase struct {
	Span Span
}

func (b memberBase) Pos() Span { return b.Span }
func (memberBase) member()     {}

// Property is a named property. Any is set when the property is annotated
// `any` or not annotated at all; Type is nil in that case.
type Property struct {
	memberBase
	Key      string
	Type     Expr
	Any      bool
	Optional bool
}

// IndexSignature constrains the value of every own entry.
type IndexSignature struct {
	memberBase
	Param string
	Value Expr
}

// UnsupportedMember is a member the compiler cannot check (methods, call
// and construct signatures, computed keys, mapped clauses).
type UnsupportedMember struct {
	memberBase
	Construct string
}

// Constructors for building shapes by hand. The parser sets Span on the
// returned values directly.

func NewPrimitive(name PrimitiveKind) *Primitive { return &Primitive{Name: name} }

func NewBoolLiteral(v bool) *Literal { return &Literal{Literal: LiteralBoolean, Bool: v} }

func NewStringLiteral(text string) *Literal { return &Literal{Literal: LiteralString, Text: text} }

func NewArray(elem Expr) *Array { return &Array{Element: elem} }

// NewUnion flattens any nested unions among members.
func NewUnion(members ...Expr) *Union {
	u := &Union{}
	for _, m := range members {
		if inner, ok := m.(*Union); ok {
			u.Members = append(u.Members, inner.Members...)
			continue
		}
		u.Members = append(u.Members, m)
	}
	return u
}

func NewObject(members ...Member) *ObjectShape { return &ObjectShape{Members: members} }

func NewReference(name string) *Reference { return &Reference{Name: name} }

func NewUnsupported(construct string) *Unsupported { return &Unsupported{Construct: construct} }

func NewProperty(key string, t Expr) *Property { return &Property{Key: key, Type: t} }

func NewAnyProperty(key string) *Property { return &Property{Key: key, Any: true} }

func NewOptionalProperty(key string, t Expr) *Property {
	return &Property{Key: key, Type: t, Any: t == nil, Optional: true}
}

func NewIndexSignature(param string, value Expr) *IndexSignature {
	return &IndexSignature{Param: param, Value: value}
}

func NewUnsupportedMember(construct string) *UnsupportedMember {
	return &UnsupportedMember{Construct: construct}
}
