package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "Primitive", KindPrimitive.String())
	assert.Equal(t, "Object", KindObject.String())
	assert.Equal(t, "Unsupported", KindUnsupported.String())
	assert.Equal(t, "Unknown", Kind(42).String())
}

func TestNewUnionFlattens(t *testing.T) {
	inner := NewUnion(NewPrimitive(String), NewPrimitive(Number))
	u := NewUnion(inner, NewBoolLiteral(true))

	assert.Len(t, u.Members, 3)
	assert.Equal(t, KindPrimitive, u.Members[0].Kind())
	assert.Equal(t, KindLiteral, u.Members[2].Kind())
}

func TestSpanIsPromoted(t *testing.T) {
	p := NewPrimitive(Boolean)
	p.Span = Span{Line: 3, Column: 14}
	assert.Equal(t, Span{Line: 3, Column: 14}, p.Pos())

	prop := NewProperty("a", p)
	prop.Span = Span{Line: 3, Column: 11}
	assert.Equal(t, 11, prop.Pos().Column)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"primitive", NewPrimitive(Number), "number"},
		{"true", NewBoolLiteral(true), "true"},
		{"string literal", NewStringLiteral("on"), `"on"`},
		{"array", NewArray(NewPrimitive(String)), "string[]"},
		{"array of union", NewArray(NewUnion(NewPrimitive(String), NewPrimitive(Number))), "(string | number)[]"},
		{"reference", NewReference("User"), "User"},
		{"unsupported", NewUnsupported("tuple"), "<tuple>"},
		{"empty object", NewObject(), "{}"},
		{
			"object",
			NewObject(
				NewProperty("a", NewPrimitive(Boolean)),
				NewAnyProperty("b"),
				NewOptionalProperty("c", NewReference("C")),
				NewIndexSignature("k", NewPrimitive(Number)),
				NewUnsupportedMember("method"),
			),
			`{ a: boolean; b: any; c?: C; [k: string]: number; <method> }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.expr))
		})
	}
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	e := NewObject(
		NewProperty("a", NewArray(NewReference("A"))),
		NewAnyProperty("skip"),
		NewIndexSignature("k", NewUnion(NewReference("B"), NewPrimitive(String))),
	)

	var kinds []Kind
	Walk(e, func(n Expr) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []Kind{
		KindObject, KindArray, KindReference, KindUnion, KindReference, KindPrimitive,
	}, kinds)
}

func TestWalkPrunes(t *testing.T) {
	e := NewUnion(NewArray(NewReference("Hidden")), NewReference("Seen"))

	var seen []string
	Walk(e, func(n Expr) bool {
		if r, ok := n.(*Reference); ok {
			seen = append(seen, r.Name)
		}
		return n.Kind() != KindArray
	})
	assert.Equal(t, []string{"Seen"}, seen)
}

func TestReferencesAreDistinct(t *testing.T) {
	e := NewObject(
		NewProperty("a", NewReference("User")),
		NewProperty("b", NewArray(NewReference("User"))),
		NewProperty("c", NewReference("Group")),
	)
	assert.Equal(t, []string{"User", "Group"}, References(e))
	assert.Nil(t, References(NewPrimitive(Number)))
}
