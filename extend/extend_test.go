package extend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/selector"
)

func complexOf(t *testing.T, src string) selector.Complex {
	t.Helper()
	l, err := selector.Parse(src)
	require.NoError(t, err)
	require.Len(t, l.Complexes, 1)
	return l.Complexes[0]
}

func compoundOf(t *testing.T, src string) selector.Compound {
	t.Helper()
	cx := complexOf(t, src)
	require.Len(t, cx.Components, 1)
	return cx.Components[0].Compound
}

func TestApplyBasicExtend(t *testing.T) {
	rule := css.NewStyleRule(".error", nil, diag.Span{})
	nodes := []css.Node{rule}

	reg := extend.NewRegistry()
	reg.Register(extend.Extension{
		Extender: complexOf(t, ".bad"),
		Target:   compoundOf(t, ".error"),
	})

	require.NoError(t, extend.Apply(nodes, reg))
	assert.Equal(t, ".error, .bad", rule.Selector)
}

func TestApplyUnifiesRemainingSimples(t *testing.T) {
	rule := css.NewStyleRule("a.error", nil, diag.Span{})
	nodes := []css.Node{rule}

	reg := extend.NewRegistry()
	reg.Register(extend.Extension{
		Extender: complexOf(t, ".bad"),
		Target:   compoundOf(t, ".error"),
	})

	require.NoError(t, extend.Apply(nodes, reg))
	assert.Equal(t, "a.error, a.bad", rule.Selector)
}

func TestApplyDropsNonUnifyingExtension(t *testing.T) {
	rule := css.NewStyleRule("a.error", nil, diag.Span{})
	nodes := []css.Node{rule}

	reg := extend.NewRegistry()
	reg.Register(extend.Extension{
		Extender: complexOf(t, "span"),
		Target:   compoundOf(t, ".error"),
	})

	require.NoError(t, extend.Apply(nodes, reg))
	assert.Equal(t, "a.error", rule.Selector)
}

func TestApplyExtensionOfExtension(t *testing.T) {
	rule := css.NewStyleRule(".base", nil, diag.Span{})
	nodes := []css.Node{rule}

	reg := extend.NewRegistry()
	reg.Register(extend.Extension{Extender: complexOf(t, ".mid"), Target: compoundOf(t, ".base")})
	reg.Register(extend.Extension{Extender: complexOf(t, ".top"), Target: compoundOf(t, ".mid")})

	require.NoError(t, extend.Apply(nodes, reg))
	assert.Equal(t, ".base, .mid, .top", rule.Selector)
}

func TestStripPlaceholdersRemovesUnextendedRule(t *testing.T) {
	ph := css.NewStyleRule("%message", nil, diag.Span{})
	normal := css.NewStyleRule(".box", nil, diag.Span{})
	nodes := []css.Node{ph, normal}

	out := extend.StripPlaceholders(nodes)
	require.Len(t, out, 1)
	assert.Equal(t, ".box", out[0].(*css.StyleRule).Selector)
}

func TestStripPlaceholdersKeepsExtendedResult(t *testing.T) {
	rule := css.NewStyleRule("%message, .warn", nil, diag.Span{})
	nodes := []css.Node{rule}

	reg := extend.NewRegistry()
	reg.Register(extend.Extension{Extender: complexOf(t, ".note"), Target: compoundOf(t, "%message")})
	require.NoError(t, extend.Apply(nodes, reg))

	out := extend.StripPlaceholders(nodes)
	require.Len(t, out, 1)
	assert.Equal(t, ".warn, .note", out[0].(*css.StyleRule).Selector)
}
