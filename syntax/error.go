package syntax

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParseError is one syntax error with its location and the offending line.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string

	// SourceLine is the full text of line Line, without the newline.
	SourceLine string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Format renders the error followed by the source line and a caret under
// the error column. With color set, the output is styled for a terminal.
func (e *ParseError) Format(color bool) string {
	gutter := fmt.Sprintf("%4d | ", e.Line)
	pad := strings.Repeat(" ", len(gutter)-2) + "| "
	caret := strings.Repeat(" ", caretOffset(e.SourceLine, e.Column)) + "^"

	if !color {
		return fmt.Sprintf("%s\n%s%s\n%s%s", e.Error(), gutter, e.SourceLine, pad, caret)
	}
	location := fmt.Sprintf("%s:%d:%d:", e.Path, e.Line, e.Column)
	return fmt.Sprintf("%s %s\n%s%s\n%s%s",
		pterm.LightCyan(location), pterm.Red(e.Message),
		pterm.Gray(gutter), e.SourceLine,
		pterm.Gray(pad), pterm.Red(caret))
}

// caretOffset converts a 1-based byte column into a display offset, keeping
// tabs so the caret lines up with the source line above it.
func caretOffset(line string, column int) int {
	if column <= 1 {
		return 0
	}
	if column-1 > len(line) {
		return len([]rune(line))
	}
	return len([]rune(line[:column-1]))
}

// ParseErrors is every syntax error found in one file, in source order.
type ParseErrors struct {
	Path   string
	Errors []*ParseError
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: syntax error", e.Path)
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more syntax errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

// Format renders every error, separated by blank lines.
func (e *ParseErrors) Format(color bool) string {
	parts := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		parts = append(parts, pe.Format(color))
	}
	return strings.Join(parts, "\n\n")
}

func collectErrors(path string, root *sitter.Node, source []byte) *ParseErrors {
	lines := strings.Split(string(source), "\n")
	out := &ParseErrors{Path: path}

	walkNodes(root, func(node *sitter.Node) bool {
		switch {
		case node.IsMissing():
			out.Errors = append(out.Errors, newParseError(path, node, lines,
				fmt.Sprintf("syntax error: expected %s", formatExpectedKind(node.Kind()))))
			return false
		case node.IsError():
			out.Errors = append(out.Errors, newParseError(path, node, lines, unexpectedMessage(node, source)))
			return false
		}
		return node.HasError()
	})

	sort.SliceStable(out.Errors, func(i, j int) bool {
		a, b := out.Errors[i], out.Errors[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return out
}

func newParseError(path string, node *sitter.Node, lines []string, message string) *ParseError {
	span := spanOf(node)
	pe := &ParseError{Path: path, Line: span.Line, Column: span.Column, Message: message}
	if span.Line-1 < len(lines) {
		pe.SourceLine = strings.TrimRight(lines[span.Line-1], "\r")
	}
	return pe
}

func unexpectedMessage(node *sitter.Node, source []byte) string {
	text := strings.TrimSpace(node.Utf8Text(source))
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if r := []rune(text); len(r) > 24 {
		text = string(r[:24]) + "..."
	}
	if text == "" {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error: unexpected %q", text)
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	isSymbol := true
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			isSymbol = false
			break
		}
	}
	if len(trimmed) == 1 || isSymbol {
		return fmt.Sprintf("'%s'", trimmed)
	}
	return strings.ReplaceAll(trimmed, "_", " ")
}
