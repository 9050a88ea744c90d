package eval_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/eval"
	"github.com/titpetric/sassgo/lexer"
	"github.com/titpetric/sassgo/parser"
)

func compile(t *testing.T, src string) *css.Stylesheet {
	t.Helper()
	sheet, err := parser.ParseStylesheet(src, "test.scss", lexer.SyntaxSCSS, 0)
	require.NoError(t, err)
	ev := eval.NewEvaluator(diag.NewLogger(), nil)
	out, err := ev.Run(sheet)
	require.NoError(t, err)
	return out
}

func compileWith(t *testing.T, src string, loader eval.Loader) *css.Stylesheet {
	t.Helper()
	sheet, err := parser.ParseStylesheet(src, "test.scss", lexer.SyntaxSCSS, 0)
	require.NoError(t, err)
	ev := eval.NewEvaluator(diag.NewLogger(), loader)
	out, err := ev.Run(sheet)
	require.NoError(t, err)
	return out
}

func firstRule(t *testing.T, sheet *css.Stylesheet) *css.StyleRule {
	t.Helper()
	require.NotEmpty(t, sheet.Nodes)
	rule, ok := sheet.Nodes[0].(*css.StyleRule)
	require.True(t, ok, "expected a style rule, got %T", sheet.Nodes[0])
	return rule
}

func TestVariableDeclarationAndDeclarationValue(t *testing.T) {
	out := compile(t, `$width: 10px; .box { width: $width; }`)
	rule := firstRule(t, out)
	require.Len(t, rule.Body, 1)
	decl, ok := rule.Body[0].(*css.Declaration)
	require.True(t, ok)
	assert.Equal(t, "width", decl.Name)
	assert.Equal(t, "10px", decl.Value)
}

func TestImportantFlag(t *testing.T) {
	out := compile(t, `.box { color: red !important; }`)
	rule := firstRule(t, out)
	decl := rule.Body[0].(*css.Declaration)
	assert.Equal(t, "red", decl.Value)
	assert.True(t, decl.Important)
}

func TestNestingResolvesParentSelector(t *testing.T) {
	out := compile(t, `.box { &:hover { color: blue; } }`)
	require.Len(t, out.Nodes, 1)
	nested, ok := out.Nodes[0].(*css.StyleRule)
	require.True(t, ok)
	assert.Equal(t, ".box:hover", nested.Selector)
}

func TestIfElseChain(t *testing.T) {
	out := compile(t, `
		$x: 2;
		.box {
			@if $x == 1 {
				color: red;
			} @else if $x == 2 {
				color: green;
			} @else {
				color: blue;
			}
		}
	`)
	rule := firstRule(t, out)
	decl := rule.Body[0].(*css.Declaration)
	assert.Equal(t, "green", decl.Value)
}

func TestEachOverList(t *testing.T) {
	out := compile(t, `
		.box {
			@each $name in red, green, blue {
				#{$name}: 1;
			}
		}
	`)
	rule := firstRule(t, out)
	require.Len(t, rule.Body, 3)
	assert.Equal(t, "red", rule.Body[0].(*css.Declaration).Name)
	assert.Equal(t, "blue", rule.Body[2].(*css.Declaration).Name)
}

func TestForLoopInclusive(t *testing.T) {
	out := compile(t, `
		.box {
			@for $i from 1 through 3 {
				m-#{$i}: $i;
			}
		}
	`)
	rule := firstRule(t, out)
	require.Len(t, rule.Body, 3)
	assert.Equal(t, "m-3", rule.Body[2].(*css.Declaration).Name)
}

func TestWhileLoop(t *testing.T) {
	out := compile(t, `
		$i: 0;
		.box {
			@while $i < 3 {
				v-#{$i}: $i;
				$i: $i + 1;
			}
		}
	`)
	rule := firstRule(t, out)
	require.Len(t, rule.Body, 3)
}

func TestFunctionReturn(t *testing.T) {
	out := compile(t, `
		@function double($n) {
			@return $n * 2;
		}
		.box { width: double(5); }
	`)
	rule := firstRule(t, out)
	decl := rule.Body[0].(*css.Declaration)
	assert.Equal(t, "10", decl.Value)
}

func TestMixinIncludeWithContent(t *testing.T) {
	out := compile(t, `
		@mixin wrap($color) {
			color: $color;
			@content;
		}
		.box {
			@include wrap(red) {
				width: 1px;
			}
		}
	`)
	rule := firstRule(t, out)
	require.Len(t, rule.Body, 2)
	assert.Equal(t, "red", rule.Body[0].(*css.Declaration).Value)
	assert.Equal(t, "1px", rule.Body[1].(*css.Declaration).Value)
}

func TestExtendAppliesAcrossRules(t *testing.T) {
	out := compile(t, `
		.error { border: 1px red; }
		.serious-error { @extend .error; width: 10px; }
	`)
	require.Len(t, out.Nodes, 2)
	errRule := out.Nodes[0].(*css.StyleRule)
	assert.Contains(t, errRule.Selector, ".serious-error")
}

func TestBuiltinMathCall(t *testing.T) {
	out := compile(t, `@use "sass:math"; .box { width: math.round(4.6px); }`)
	rule := firstRule(t, out)
	decl := rule.Body[0].(*css.Declaration)
	assert.Equal(t, "5px", decl.Value)
}

func TestMediaBubblesBareDeclarations(t *testing.T) {
	out := compile(t, `
		.box {
			@media screen {
				color: red;
			}
		}
	`)
	require.NotEmpty(t, out.Nodes)
	media, ok := out.Nodes[0].(*css.AtRule)
	require.True(t, ok)
	assert.Equal(t, "screen", media.Prelude)
	inner, ok := media.Body[0].(*css.StyleRule)
	require.True(t, ok)
	assert.Equal(t, ".box", inner.Selector)
}

// fakeLoader is a minimal in-memory eval.Loader backing @use/@import
// tests without touching the filesystem.
type fakeLoader struct {
	files map[string]string
}

func (f *fakeLoader) Load(_ context.Context, fromURL, url string) (*ast.Stylesheet, string, error) {
	src, ok := f.files[url]
	if !ok {
		return nil, "", fmt.Errorf("no such module %q", url)
	}
	sheet, err := parser.ParseStylesheet(src, url, lexer.SyntaxSCSS, 1)
	if err != nil {
		return nil, "", err
	}
	return sheet, url, nil
}

func TestUseBindsNamespacedVariable(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"colors": `$primary: blue;`,
	}}
	out := compileWith(t, `
		@use "colors";
		.box { color: colors.$primary; }
	`, loader)
	rule := firstRule(t, out)
	decl := rule.Body[0].(*css.Declaration)
	assert.Equal(t, "blue", decl.Value)
}

func TestUseEmitsModuleCSSOnce(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"base": `.reset { margin: 0; }`,
	}}
	out := compileWith(t, `
		@use "base";
		@use "base" as b2;
	`, loader)
	count := 0
	for _, n := range out.Nodes {
		if _, ok := n.(*css.StyleRule); ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
