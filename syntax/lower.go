package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// lowerer converts tree-sitter nodes into the syntax model. It never fails:
// forms it does not model become Other declarations or Unsupported types,
// and the export collector and compiler decide what to do with them.
type lowerer struct {
	source []byte
}

func (l *lowerer) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(l.source)
}

// unquote strips the delimiters of a string node.
func (l *lowerer) unquote(node *sitter.Node) string {
	s := l.text(node)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (l *lowerer) statement(mod *Module, node *sitter.Node) {
	switch node.Kind() {
	case "export_statement":
		mod.Statements = append(mod.Statements, l.exportStatement(node))

	case "import_statement":
		mod.Imports = append(mod.Imports, l.importedNames(node)...)

	case "import_alias":
		if name := l.text(node.NamedChild(0)); name != "" {
			mod.Imports = append(mod.Imports, name)
		}

	case "ambient_declaration":
		for _, child := range namedChildren(node) {
			l.localDeclaration(mod, child)
		}

	default:
		l.localDeclaration(mod, node)
	}
}

func (l *lowerer) localDeclaration(mod *Module, node *sitter.Node) {
	var construct string
	switch node.Kind() {
	case "type_alias_declaration":
		construct = "type alias"
	case "interface_declaration":
		construct = "interface"
	case "class_declaration", "abstract_class_declaration":
		construct = "class"
	case "enum_declaration":
		construct = "enum"
	default:
		return
	}
	mod.Statements = append(mod.Statements, &LocalDeclaration{
		Span:      spanOf(node),
		Name:      l.text(node.ChildByFieldName("name")),
		Construct: construct,
	})
}

func (l *lowerer) exportStatement(node *sitter.Node) *ExportStatement {
	stmt := &ExportStatement{Span: spanOf(node)}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		stmt.Declaration = l.declaration(decl)
	}
	if source := node.ChildByFieldName("source"); source != nil {
		stmt.Source = l.unquote(source)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default", "=":
			if !child.IsNamed() {
				stmt.Default = true
			}
		case "*":
			stmt.Wildcard = true
		case "namespace_export":
			stmt.Wildcard = true
			if names := namedChildren(child); len(names) > 0 {
				stmt.Namespace = l.unquote(names[len(names)-1])
			}
		case "export_clause":
			for _, spec := range namedChildren(child) {
				if spec.Kind() != "export_specifier" {
					continue
				}
				stmt.Specifiers = append(stmt.Specifiers, Specifier{
					Name:  l.unquote(spec.ChildByFieldName("name")),
					Alias: l.unquote(spec.ChildByFieldName("alias")),
				})
			}
		case "identifier":
			// export as namespace Name;
			if hasToken(node, "as") && hasToken(node, "namespace") {
				stmt.Namespace = l.text(child)
			}
		}
	}
	return stmt
}

func (l *lowerer) declaration(node *sitter.Node) Declaration {
	base := declBase{Span: spanOf(node)}
	name := l.text(node.ChildByFieldName("name"))

	switch node.Kind() {
	case "type_alias_declaration":
		return &TypeAlias{
			declBase: base,
			Name:     name,
			Generic:  node.ChildByFieldName("type_parameters") != nil,
			Type:     l.typeExpr(node.ChildByFieldName("value")),
		}

	case "interface_declaration":
		decl := &Interface{
			declBase: base,
			Name:     name,
			Generic:  node.ChildByFieldName("type_parameters") != nil,
		}
		for _, child := range namedChildren(node) {
			if child.Kind() == "extends_type_clause" {
				for _, ext := range namedChildren(child) {
					decl.Extends = append(decl.Extends, l.text(ext))
				}
			}
		}
		decl.Members = l.members(node.ChildByFieldName("body"))
		return decl

	case "function_declaration", "generator_function_declaration", "function_signature":
		return &Function{declBase: base, Name: name}

	case "class_declaration", "abstract_class_declaration":
		return &Class{declBase: base, Name: name}

	case "enum_declaration":
		return &Enum{declBase: base, Name: name}

	case "internal_module", "module":
		return &Namespace{declBase: base, Name: l.unquote(node.ChildByFieldName("name"))}

	case "import_alias":
		return &ImportEquals{declBase: base, Name: l.text(node.NamedChild(0))}

	case "lexical_declaration", "variable_declaration":
		return l.variable(node, base)

	case "ambient_declaration":
		if children := namedChildren(node); len(children) > 0 {
			return l.declaration(children[0])
		}
	}
	return &Other{declBase: base, Kind: humanKind(node.Kind())}
}

func (l *lowerer) variable(node *sitter.Node, base declBase) *Variable {
	v := &Variable{declBase: base}
	for _, declarator := range namedChildren(node) {
		if declarator.Kind() != "variable_declarator" {
			continue
		}
		target := declarator.ChildByFieldName("name")
		if target == nil {
			continue
		}
		if target.Kind() == "identifier" {
			v.Names = append(v.Names, l.text(target))
			continue
		}
		v.Destructured = true
		v.Names = l.patternNames(target, v.Names)
	}
	return v
}

// patternNames appends the identifiers bound by a destructuring pattern.
// Property keys and default-value expressions bind nothing.
func (l *lowerer) patternNames(node *sitter.Node, names []string) []string {
	if node == nil {
		return names
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return append(names, l.text(node))
	case "pair_pattern":
		return l.patternNames(node.ChildByFieldName("value"), names)
	case "assignment_pattern", "object_assignment_pattern":
		return l.patternNames(node.ChildByFieldName("left"), names)
	}
	for _, child := range namedChildren(node) {
		names = l.patternNames(child, names)
	}
	return names
}

func (l *lowerer) importedNames(node *sitter.Node) []string {
	var names []string
	for _, child := range namedChildren(node) {
		if child.Kind() != "import_clause" {
			continue
		}
		for _, part := range namedChildren(child) {
			switch part.Kind() {
			case "identifier":
				names = append(names, l.text(part))
			case "namespace_import":
				if ids := namedChildren(part); len(ids) > 0 {
					names = append(names, l.text(ids[0]))
				}
			case "named_imports":
				for _, spec := range namedChildren(part) {
					if spec.Kind() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					names = append(names, l.unquote(local))
				}
			}
		}
	}
	return names
}
