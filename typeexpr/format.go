package typeexpr

import (
	"strings"
)

// Format renders e in a TypeScript-like form for logs and reports.
// The output is not guaranteed to re-parse.
func Format(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch t := e.(type) {
	case nil:
		sb.WriteString("any")
	case *Primitive:
		sb.WriteString(string(t.Name))
	case *Literal:
		if t.Literal == LiteralBoolean {
			if t.Bool {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
			return
		}
		sb.WriteByte('"')
		sb.WriteString(t.Text)
		sb.WriteByte('"')
	case *Array:
		if _, ok := t.Element.(*Union); ok {
			sb.WriteByte('(')
			writeExpr(sb, t.Element)
			sb.WriteString(")[]")
			return
		}
		writeExpr(sb, t.Element)
		sb.WriteString("[]")
	case *Union:
		for i, m := range t.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			writeExpr(sb, m)
		}
	case *ObjectShape:
		if len(t.Members) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, m := range t.Members {
			if i > 0 {
				sb.WriteString("; ")
			}
			writeMember(sb, m)
		}
		sb.WriteString(" }")
	case *Reference:
		sb.WriteString(t.Name)
	case *Unsupported:
		sb.WriteString("<")
		sb.WriteString(t.Construct)
		sb.WriteString(">")
	}
}

func writeMember(sb *strings.Builder, m Member) {
	switch t := m.(type) {
	case *Property:
		sb.WriteString(t.Key)
		if t.Optional {
			sb.WriteByte('?')
		}
		sb.WriteString(": ")
		if t.Any {
			sb.WriteString("any")
		} else {
			writeExpr(sb, t.Type)
		}
	case *IndexSignature:
		sb.WriteString("[")
		sb.WriteString(t.Param)
		sb.WriteString(": string]: ")
		writeExpr(sb, t.Value)
	case *UnsupportedMember:
		sb.WriteString("<")
		sb.WriteString(t.Construct)
		sb.WriteString(">")
	}
}

// Walk calls fn for e and then for every sub-expression in depth-first,
// source order. If fn returns false the children of that node are skipped.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch t := e.(type) {
	case *Array:
		Walk(t.Element, fn)
	case *Union:
		for _, m := range t.Members {
			Walk(m, fn)
		}
	case *ObjectShape:
		for _, m := range t.Members {
			switch mt := m.(type) {
			case *Property:
				if !mt.Any {
					Walk(mt.Type, fn)
				}
			case *IndexSignature:
				Walk(mt.Value, fn)
			}
		}
	}
}

// References returns the distinct names referenced anywhere inside e, in
// first-seen order.
func References(e Expr) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(e, func(n Expr) bool {
		if r, ok := n.(*Reference); ok && !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
		return true
	})
	return names
}
