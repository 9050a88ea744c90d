package css_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
)

func TestStyleRuleNeverNestsAnotherStyleRule(t *testing.T) {
	decl := css.NewDeclaration("color", "red", false, diag.Span{})
	rule := css.NewStyleRule(".box", []css.Node{decl}, diag.Span{})
	for _, n := range rule.Body {
		_, isRule := n.(*css.StyleRule)
		assert.False(t, isRule, "a resolved StyleRule body must not contain another StyleRule")
	}
}

func TestAtRuleKindsAreDistinct(t *testing.T) {
	media := css.NewAtRule(css.AtRuleMedia, "media", "(min-width: 768px)", nil, diag.Span{})
	kf := css.NewAtRule(css.AtRuleKeyframes, "keyframes", "fade", nil, diag.Span{})
	assert.NotEqual(t, media.Kind, kf.Kind)
	assert.Equal(t, "(min-width: 768px)", media.Prelude)
}

func TestStylesheetNodesDispatchByType(t *testing.T) {
	sheet := css.NewStylesheet([]css.Node{
		css.NewComment("hi", diag.Span{}),
		css.NewImport("base.css", "", diag.Span{}),
	}, diag.Span{})

	var comments, imports int
	for _, n := range sheet.Nodes {
		switch n.(type) {
		case *css.Comment:
			comments++
		case *css.Import:
			imports++
		}
	}
	assert.Equal(t, 1, comments)
	assert.Equal(t, 1, imports)
}
