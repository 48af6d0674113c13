package syntax

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/teranos/tsguard/typeexpr"
)

// constructNames gives readable names to type node kinds that lower to
// typeexpr.Unsupported. Kinds missing here use their grammar name with
// underscores replaced.
var constructNames = map[string]string{
	"tuple_type":                  "tuple",
	"intersection_type":           "intersection",
	"function_type":               "function type",
	"constructor_type":            "constructor type",
	"conditional_type":            "conditional type",
	"infer_type":                  "infer",
	"index_type_query":            "keyof",
	"lookup_type":                 "indexed access",
	"type_query":                  "typeof query",
	"template_literal_type":       "template literal type",
	"readonly_type":               "readonly operator",
	"type_predicate":              "type predicate",
	"asserts":                     "assertion signature",
	"this_type":                   "this type",
	"nested_type_identifier":      "qualified name",
	"generic_type":                "generic instantiation",
	"existential_type":            "existential type",
	"flow_maybe_type":             "maybe type",
	"optional_type":               "optional element",
	"rest_type":                   "rest element",
	"import":                      "import type",
	"mapped_type_clause":          "mapped type",
	"method_signature":            "method signature",
	"call_signature":              "call signature",
	"construct_signature":         "construct signature",
	"abstract_method_signature":   "method signature",
	"computed_property_name":      "computed key",
	"private_property_identifier": "private name",
}

func humanKind(kind string) string {
	if name, ok := constructNames[kind]; ok {
		return name
	}
	return strings.ReplaceAll(strings.TrimSuffix(kind, "_declaration"), "_", " ")
}

// typeExpr lowers a type node. A nil node lowers to Unsupported so callers
// never see a nil expression.
func (l *lowerer) typeExpr(node *sitter.Node) typeexpr.Expr {
	if node == nil {
		return typeexpr.NewUnsupported("missing type")
	}
	span := spanOf(node)

	switch node.Kind() {
	case "type_annotation", "parenthesized_type":
		if children := namedChildren(node); len(children) == 1 {
			return l.typeExpr(children[0])
		}

	case "predefined_type":
		return l.predefined(node, span)

	case "literal_type":
		return l.literal(node, span)

	case "type_identifier", "identifier":
		ref := typeexpr.NewReference(l.text(node))
		ref.Span = span
		return ref

	case "array_type":
		if children := namedChildren(node); len(children) == 1 {
			arr := typeexpr.NewArray(l.typeExpr(children[0]))
			arr.Span = span
			return arr
		}

	case "union_type":
		members := make([]typeexpr.Expr, 0, 2)
		for _, child := range namedChildren(node) {
			members = append(members, l.typeExpr(child))
		}
		u := typeexpr.NewUnion(members...)
		u.Span = span
		return u

	case "object_type":
		obj := typeexpr.NewObject(l.members(node)...)
		obj.Span = span
		return obj

	case "generic_type":
		if arr := l.arrayGeneric(node, span); arr != nil {
			return arr
		}
	}

	u := typeexpr.NewUnsupported(humanKind(node.Kind()))
	u.Span = span
	return u
}

func (l *lowerer) predefined(node *sitter.Node, span typeexpr.Span) typeexpr.Expr {
	text := l.text(node)
	switch kind := typeexpr.PrimitiveKind(text); kind {
	case typeexpr.Number, typeexpr.String, typeexpr.Boolean, typeexpr.Object:
		p := typeexpr.NewPrimitive(kind)
		p.Span = span
		return p
	}
	u := typeexpr.NewUnsupported(text)
	u.Span = span
	return u
}

func (l *lowerer) literal(node *sitter.Node, span typeexpr.Span) typeexpr.Expr {
	children := namedChildren(node)
	if len(children) == 1 {
		value := children[0]
		switch value.Kind() {
		case "true", "false":
			lit := typeexpr.NewBoolLiteral(value.Kind() == "true")
			lit.Span = span
			return lit
		case "string":
			lit := typeexpr.NewStringLiteral(l.unquote(value))
			lit.Span = span
			return lit
		case "null", "undefined":
			u := typeexpr.NewUnsupported(value.Kind())
			u.Span = span
			return u
		case "number", "unary_expression":
			u := typeexpr.NewUnsupported("number literal")
			u.Span = span
			return u
		}
	}
	u := typeexpr.NewUnsupported("literal")
	u.Span = span
	return u
}

// arrayGeneric lowers Array<T> and ReadonlyArray<T> to an Array, and returns
// nil for every other generic instantiation.
func (l *lowerer) arrayGeneric(node *sitter.Node, span typeexpr.Span) typeexpr.Expr {
	switch l.text(node.ChildByFieldName("name")) {
	case "Array", "ReadonlyArray":
	default:
		return nil
	}
	args := namedChildren(node.ChildByFieldName("type_arguments"))
	if len(args) != 1 {
		return nil
	}
	arr := typeexpr.NewArray(l.typeExpr(args[0]))
	arr.Span = span
	return arr
}

// members lowers the members of an object type or interface body.
func (l *lowerer) members(body *sitter.Node) []typeexpr.Member {
	var members []typeexpr.Member
	for _, node := range namedChildren(body) {
		span := spanOf(node)
		var m typeexpr.Member

		switch node.Kind() {
		case "property_signature":
			m = l.property(node)

		case "index_signature":
			m = l.indexSignature(node)

		default:
			u := typeexpr.NewUnsupportedMember(humanKind(node.Kind()))
			u.Span = span
			m = u
		}
		members = append(members, m)
	}
	return members
}

func (l *lowerer) property(node *sitter.Node) typeexpr.Member {
	span := spanOf(node)
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		u := typeexpr.NewUnsupportedMember("property")
		u.Span = span
		return u
	}

	var key string
	switch nameNode.Kind() {
	case "property_identifier", "number":
		key = l.text(nameNode)
	case "string":
		key = l.unquote(nameNode)
	default:
		u := typeexpr.NewUnsupportedMember(humanKind(nameNode.Kind()))
		u.Span = span
		return u
	}

	optional := hasToken(node, "?")
	annotation := node.ChildByFieldName("type")
	if annotation == nil || l.isAny(annotation) {
		p := typeexpr.NewAnyProperty(key)
		p.Optional = optional
		p.Span = span
		return p
	}

	p := typeexpr.NewProperty(key, l.typeExpr(annotation))
	p.Optional = optional
	p.Span = span
	return p
}

func (l *lowerer) isAny(annotation *sitter.Node) bool {
	children := namedChildren(annotation)
	return len(children) == 1 && children[0].Kind() == "predefined_type" && l.text(children[0]) == "any"
}

func (l *lowerer) indexSignature(node *sitter.Node) typeexpr.Member {
	span := spanOf(node)
	for _, child := range namedChildren(node) {
		if child.Kind() == "mapped_type_clause" {
			u := typeexpr.NewUnsupportedMember(humanKind(child.Kind()))
			u.Span = span
			return u
		}
	}

	sig := typeexpr.NewIndexSignature(
		l.text(node.ChildByFieldName("name")),
		l.typeExpr(node.ChildByFieldName("type")),
	)
	sig.Span = span
	return sig
}
