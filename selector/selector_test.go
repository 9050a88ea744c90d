package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/selector"
)

func TestParseSimpleCompound(t *testing.T) {
	l, err := selector.Parse("div.btn#go")
	require.NoError(t, err)
	require.Len(t, l.Complexes, 1)
	require.Len(t, l.Complexes[0].Components, 1)
	simples := l.Complexes[0].Components[0].Compound.Simples
	require.Len(t, simples, 3)
	assert.Equal(t, "div", simples[0].(selector.TypeSelector).Name)
	assert.Equal(t, "btn", simples[1].(selector.ClassSelector).Name)
	assert.Equal(t, "go", simples[2].(selector.IDSelector).Name)
}

func TestParseCombinators(t *testing.T) {
	l, err := selector.Parse("ul > li + li ~ span a")
	require.NoError(t, err)
	comps := l.Complexes[0].Components
	require.Len(t, comps, 5)
	assert.Equal(t, selector.CombinatorDescendant, comps[0].Combinator)
	assert.Equal(t, selector.CombinatorChild, comps[1].Combinator)
	assert.Equal(t, selector.CombinatorNextSibling, comps[2].Combinator)
	assert.Equal(t, selector.CombinatorFollowingSibling, comps[3].Combinator)
	assert.Equal(t, selector.CombinatorDescendant, comps[4].Combinator)
}

func TestParseSelectorList(t *testing.T) {
	l, err := selector.Parse("a.one, b.two")
	require.NoError(t, err)
	require.Len(t, l.Complexes, 2)
}

func TestParseAttributeSelector(t *testing.T) {
	l, err := selector.Parse(`input[type="text" i]`)
	require.NoError(t, err)
	simples := l.Complexes[0].Components[0].Compound.Simples
	require.Len(t, simples, 2)
	attr := simples[1].(selector.AttributeSelector)
	assert.Equal(t, "type", attr.Name)
	assert.Equal(t, "=", attr.Op)
	assert.Equal(t, "text", attr.Value)
	assert.Equal(t, "i", attr.CaseSensitive)
}

func TestParsePseudoWithArgument(t *testing.T) {
	l, err := selector.Parse(":not(.a, .b)")
	require.NoError(t, err)
	ps := l.Complexes[0].Components[0].Compound.Simples[0].(selector.PseudoSelector)
	assert.Equal(t, "not", ps.Name)
	assert.False(t, ps.Element)
	assert.Equal(t, ".a, .b", ps.Argument)
}

func TestParsePseudoElement(t *testing.T) {
	l, err := selector.Parse("p::before")
	require.NoError(t, err)
	simples := l.Complexes[0].Components[0].Compound.Simples
	ps := simples[1].(selector.PseudoSelector)
	assert.True(t, ps.Element)
	assert.Equal(t, "before", ps.Name)
}

func TestSpecificityOrdering(t *testing.T) {
	id, _ := selector.Parse("#main")
	cls, _ := selector.Parse(".main")
	typ, _ := selector.Parse("div")

	spID := selector.OfComplex(id.Complexes[0])
	spCls := selector.OfComplex(cls.Complexes[0])
	spTyp := selector.OfComplex(typ.Complexes[0])

	assert.True(t, spCls.Less(spID))
	assert.True(t, spTyp.Less(spCls))
	assert.Equal(t, selector.Specificity{IDs: 1}, spID)
	assert.Equal(t, selector.Specificity{Classes: 1}, spCls)
	assert.Equal(t, selector.Specificity{Elements: 1}, spTyp)
}

func TestUnifyTypeAndClass(t *testing.T) {
	a, _ := selector.Parse("div")
	b, _ := selector.Parse(".btn")
	merged, ok := selector.Unify(a.Complexes[0].Components[0].Compound, b.Complexes[0].Components[0].Compound)
	require.True(t, ok)
	assert.Equal(t, "div.btn", merged.String())
}

func TestUnifyConflictingTypesFails(t *testing.T) {
	a, _ := selector.Parse("div")
	b, _ := selector.Parse("span")
	_, ok := selector.Unify(a.Complexes[0].Components[0].Compound, b.Complexes[0].Components[0].Compound)
	assert.False(t, ok)
}

func TestUnifyUniversalYieldsMoreSpecific(t *testing.T) {
	a, _ := selector.Parse("*")
	b, _ := selector.Parse("div.btn")
	merged, ok := selector.Unify(a.Complexes[0].Components[0].Compound, b.Complexes[0].Components[0].Compound)
	require.True(t, ok)
	assert.Equal(t, "div.btn", merged.String())
}

func TestUnifyDeduplicatesSimples(t *testing.T) {
	a, _ := selector.Parse(".btn")
	b, _ := selector.Parse(".btn.active")
	merged, ok := selector.Unify(a.Complexes[0].Components[0].Compound, b.Complexes[0].Components[0].Compound)
	require.True(t, ok)
	assert.Equal(t, ".btn.active", merged.String())
}

func TestIsSuperselectorDirect(t *testing.T) {
	a, _ := selector.Parse(".btn")
	b, _ := selector.Parse("div.btn")
	assert.True(t, selector.IsSuperselector(a.Complexes[0], b.Complexes[0]))
	assert.False(t, selector.IsSuperselector(b.Complexes[0], a.Complexes[0]))
}

func TestIsSuperselectorDescendantGap(t *testing.T) {
	a, _ := selector.Parse(".outer .inner")
	b, _ := selector.Parse(".outer .middle .inner")
	assert.True(t, selector.IsSuperselector(a.Complexes[0], b.Complexes[0]))
}

func TestResolveNestingBareAmpersand(t *testing.T) {
	outer, _ := selector.Parse(".btn")
	inner, _ := selector.Parse("&:hover")
	resolved, err := selector.ResolveNesting(outer, inner)
	require.NoError(t, err)
	require.Len(t, resolved.Complexes, 1)
	assert.Equal(t, ".btn:hover", resolved.Complexes[0].String())
}

func TestResolveNestingSuffixAmpersand(t *testing.T) {
	outer, _ := selector.Parse(".btn")
	inner, _ := selector.Parse("&.active")
	resolved, err := selector.ResolveNesting(outer, inner)
	require.NoError(t, err)
	assert.Equal(t, ".btn.active", resolved.Complexes[0].String())
}

func TestResolveNestingNoAmpersandJoinsDescendant(t *testing.T) {
	outer, _ := selector.Parse(".btn")
	inner, _ := selector.Parse("span")
	resolved, err := selector.ResolveNesting(outer, inner)
	require.NoError(t, err)
	assert.Equal(t, ".btn span", resolved.Complexes[0].String())
}

func TestResolveNestingCrossProduct(t *testing.T) {
	outer, _ := selector.Parse("a.one, a.two")
	inner, _ := selector.Parse("&:hover, &:focus")
	resolved, err := selector.ResolveNesting(outer, inner)
	require.NoError(t, err)
	assert.Len(t, resolved.Complexes, 4)
}

func TestResolveNestingInvalidSuffixErrors(t *testing.T) {
	outer, _ := selector.Parse(".btn")
	inner, _ := selector.Parse("div&")
	_, err := selector.ResolveNesting(outer, inner)
	assert.Error(t, err)
}
