package syntax

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/typeexpr"
)

// Grammar names the grammar tsguard links against. Version output uses it
// when the binary carries no module build information.
const Grammar = "tree-sitter-typescript v0.23.2"

// Parse parses source as a TypeScript module and lowers its top level.
// Files ending in .tsx are parsed with the TSX dialect.
//
// If the source has syntax errors, Parse returns a *ParseErrors marked with
// errors.ErrParse and no module.
func Parse(path string, source []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(languageFor(path)); err != nil {
		return nil, errors.Wrap(err, "syntax: failed to load typescript grammar")
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.Newf("syntax: parser returned no tree for %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, errors.Newf("syntax: unexpected root node in %s", path)
	}
	if root.HasError() {
		return nil, errors.Mark(collectErrors(path, root, source), errors.ErrParse)
	}

	l := &lowerer{source: source}
	mod := &Module{Path: path}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		l.statement(mod, root.NamedChild(i))
	}
	return mod, nil
}

func languageFor(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	}
	return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
}

func spanOf(node *sitter.Node) typeexpr.Span {
	if node == nil {
		return typeexpr.Span{}
	}
	start := node.StartPosition()
	return typeexpr.Span{Line: int(start.Row) + 1, Column: int(start.Column) + 1}
}

// namedChildren returns the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// hasToken reports whether node has a direct anonymous child with the given
// text, such as "default" or "?".
func hasToken(node *sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

func walkNodes(root *sitter.Node, visit func(node *sitter.Node) bool) {
	if root == nil || !visit(root) {
		return
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		walkNodes(root.Child(i), visit)
	}
}
