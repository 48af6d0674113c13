// Package guard compiles type expressions into JavaScript boolean checks.
//
// A check is a single expression over an access path. Compile threads the
// path through the type, composing conjunctions and disjunctions, and calls
// the guard of any named type it meets instead of inlining it.
package guard

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/logger"
	"github.com/teranos/tsguard/typeexpr"
)

// Check is the compiled form of one declaration's shape.
type Check struct {
	// Code is a JavaScript expression that evaluates to true exactly when
	// the value at the root path conforms to the shape.
	Code string

	// References lists the named types the code calls guards for, in
	// first-seen order without duplicates.
	References []string
}

// UnsupportedError reports a type construct the compiler cannot check.
// Errors returned by Compile that wrap it are marked with
// errors.ErrUnsupportedType.
type UnsupportedError struct {
	Construct string
	Span      typeexpr.Span
}

func (e *UnsupportedError) Error() string {
	if e.Span.Line == 0 {
		return fmt.Sprintf("unsupported type construct: %s", e.Construct)
	}
	return fmt.Sprintf("unsupported type construct: %s at %d:%d", e.Construct, e.Span.Line, e.Span.Column)
}

// GuardName is the name of the guard function generated for typename.
func GuardName(typename string) string {
	return "is" + typename
}

// Compiler turns type expressions into checks. It holds no per-call state,
// so one Compiler can be reused for every declaration in a module.
type Compiler struct {
	log *zap.SugaredLogger
}

// NewCompiler creates a compiler that traces its traversal to log at debug
// level. A nil log disables tracing.
func NewCompiler(log *zap.SugaredLogger) *Compiler {
	return &Compiler{log: logger.OrNop(log)}
}

// Compile translates t into a check over the identifier root.
//
// Binder names for array elements and index-signature entries are numbered
// from zero on every call, so compiling the same shape twice gives
// byte-identical code.
func (c *Compiler) Compile(t typeexpr.Expr, root string) (Check, error) {
	if t == nil {
		return Check{}, errors.AssertionFailedf("guard: nil type expression")
	}
	if !IsIdentifier(root) {
		return Check{}, errors.Newf("guard: root %q is not an identifier", root)
	}

	s := &scope{log: c.log, seen: make(map[string]bool)}
	f, err := s.compile(t, Root(root), 0)
	if err != nil {
		return Check{}, err
	}
	return Check{Code: f.code, References: s.refs}, nil
}

// Compile is Compiler.Compile without tracing.
func Compile(t typeexpr.Expr, root string) (Check, error) {
	return NewCompiler(nil).Compile(t, root)
}

// fragment is a compiled sub-check. composite is set when the code's
// outermost operator is && or ||, in which case it must be parenthesized
// before being combined with other fragments.
type fragment struct {
	code      string
	composite bool
}

func (f fragment) operand() string {
	if f.composite {
		return "(" + f.code + ")"
	}
	return f.code
}

// scope is the state of a single Compile call.
type scope struct {
	log  *zap.SugaredLogger
	next int
	refs []string
	seen map[string]bool
}

func (s *scope) binder() int {
	n := s.next
	s.next++
	return n
}

func (s *scope) compile(t typeexpr.Expr, p Path, depth int) (fragment, error) {
	s.log.Debugw("visit",
		logger.FieldVariant, t.Kind().String(),
		logger.FieldPath, p.String(),
		logger.FieldDepth, depth,
	)

	switch t := t.(type) {
	case *typeexpr.Primitive:
		return fragment{code: fmt.Sprintf(`typeof %s === "%s"`, p, t.Name)}, nil

	case *typeexpr.Literal:
		if t.Literal == typeexpr.LiteralBoolean {
			return fragment{code: fmt.Sprintf("%s === %t", p, t.Bool)}, nil
		}
		return fragment{code: fmt.Sprintf(`%s === "%s"`, p, t.Text)}, nil

	case *typeexpr.Array:
		return s.array(t, p, depth)

	case *typeexpr.Union:
		return s.union(t, p, depth)

	case *typeexpr.ObjectShape:
		return s.object(t, p, depth)

	case *typeexpr.Reference:
		if !s.seen[t.Name] {
			s.seen[t.Name] = true
			s.refs = append(s.refs, t.Name)
		}
		return fragment{code: fmt.Sprintf("%s(%s)", GuardName(t.Name), p)}, nil

	case *typeexpr.Unsupported:
		return fragment{}, unsupported(t.Construct, t.Pos())

	default:
		return fragment{}, unsupported(t.Kind().String(), t.Pos())
	}
}

func (s *scope) array(t *typeexpr.Array, p Path, depth int) (fragment, error) {
	binder := fmt.Sprintf("_e%d", s.binder())
	elem, err := s.compile(t.Element, Root(binder), depth+1)
	if err != nil {
		return fragment{}, err
	}
	return fragment{code: fmt.Sprintf("(Array.isArray(%s) && %s.every((%s) => %s))", p, p, binder, elem.code)}, nil
}

func (s *scope) union(t *typeexpr.Union, p Path, depth int) (fragment, error) {
	if len(t.Members) == 0 {
		return fragment{}, errors.AssertionFailedf("guard: empty union at %d:%d", t.Span.Line, t.Span.Column)
	}
	if len(t.Members) == 1 {
		return s.compile(t.Members[0], p, depth)
	}

	parts := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		f, err := s.compile(m, p, depth+1)
		if err != nil {
			return fragment{}, err
		}
		parts = append(parts, f.operand())
	}
	return fragment{code: strings.Join(parts, " || "), composite: true}, nil
}

func (s *scope) object(t *typeexpr.ObjectShape, p Path, depth int) (fragment, error) {
	parts := []string{"!!" + p.String(), fmt.Sprintf(`typeof %s === "object"`, p)}

	for _, m := range t.Members {
		switch m := m.(type) {
		case *typeexpr.Property:
			at := p.Property(m.Key)
			if m.Any {
				if !m.Optional {
					parts = append(parts, fmt.Sprintf("%s in %s", quote(m.Key), p))
				}
				continue
			}
			f, err := s.compile(m.Type, at, depth+1)
			if err != nil {
				return fragment{}, err
			}
			if m.Optional {
				parts = append(parts, fmt.Sprintf("(%s === undefined || %s)", at, f.operand()))
				continue
			}
			parts = append(parts, f.operand())

		case *typeexpr.IndexSignature:
			n := s.binder()
			key, value := fmt.Sprintf("_k%d", n), fmt.Sprintf("_v%d", n)
			f, err := s.compile(m.Value, Root(value), depth+1)
			if err != nil {
				return fragment{}, err
			}
			parts = append(parts, fmt.Sprintf("Object.entries(%s).every(([%s, %s]) => %s)", p, key, value, f.code))

		case *typeexpr.UnsupportedMember:
			return fragment{}, unsupported(m.Construct, m.Pos())

		default:
			return fragment{}, unsupported("member", m.Pos())
		}
	}

	return fragment{code: strings.Join(parts, " && "), composite: true}, nil
}

func unsupported(construct string, span typeexpr.Span) error {
	return errors.Mark(&UnsupportedError{Construct: construct, Span: span}, errors.ErrUnsupportedType)
}
