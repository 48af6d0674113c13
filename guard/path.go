package guard

import (
	"strings"
)

// Path is a symbolic access path: a root identifier (the guard parameter or
// a synthetic binder) followed by property accesses. It is rendered to
// JavaScript only when a check is emitted.
type Path struct {
	root string
	keys []string
}

// Root returns a path consisting of only the identifier name.
func Root(name string) Path {
	return Path{root: name}
}

// Property returns a new path that accesses key on p. p is not modified.
func (p Path) Property(key string) Path {
	keys := make([]string, len(p.keys), len(p.keys)+1)
	copy(keys, p.keys)
	return Path{root: p.root, keys: append(keys, key)}
}

// Depth is the number of property accesses below the root.
func (p Path) Depth() int {
	return len(p.keys)
}

// String renders the path. Keys that are valid identifiers use dot
// notation; all others use a quoted bracket access.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString(p.root)
	for _, key := range p.keys {
		if IsIdentifier(key) {
			sb.WriteByte('.')
			sb.WriteString(key)
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(quote(key))
		sb.WriteByte(']')
	}
	return sb.String()
}

// IsIdentifier reports whether s is a plain ASCII JavaScript identifier, and
// so can follow a dot in a member access (reserved words are allowed there
// since ES5).
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// quote wraps s in double quotes, escaping only backslashes and quotes.
func quote(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return `"` + s + `"`
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
