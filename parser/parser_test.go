package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/lexer"
	"github.com/titpetric/sassgo/parser"
)

func parseSCSS(t *testing.T, src string) *ast.Stylesheet {
	t.Helper()
	sheet, err := parser.ParseStylesheet(src, "test.scss", lexer.SyntaxSCSS, 0)
	require.NoError(t, err)
	return sheet
}

func TestParseVariableDeclaration(t *testing.T) {
	sheet := parseSCSS(t, `$width: 10px !default;`)
	require.Len(t, sheet.Statements, 1)
	v, ok := sheet.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "width", v.Name)
	assert.True(t, v.Default)
	num, ok := v.Value.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, "px", num.Unit)
	assert.Equal(t, float64(10), num.Value)
}

func TestParseStyleRuleAndDeclaration(t *testing.T) {
	sheet := parseSCSS(t, `.box { color: red; width: 10px; }`)
	require.Len(t, sheet.Statements, 1)
	rule, ok := sheet.Statements[0].(*ast.StyleRule)
	require.True(t, ok)
	assert.Equal(t, ".box", rule.Prelude.PlainText())
	require.Len(t, rule.Body, 2)

	decl, ok := rule.Body[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Name.PlainText())
	str, ok := decl.Value.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "red", str.Text.PlainText())
	assert.False(t, str.Quoted)
}

func TestParsePseudoSelectorNotMistakenForDeclaration(t *testing.T) {
	sheet := parseSCSS(t, `a:hover { color: blue; }`)
	require.Len(t, sheet.Statements, 1)
	rule, ok := sheet.Statements[0].(*ast.StyleRule)
	require.True(t, ok)
	assert.Equal(t, "a:hover", rule.Prelude.PlainText())
}

func TestParseNestedSelectorWithAmpersand(t *testing.T) {
	sheet := parseSCSS(t, `.btn { &:hover { color: green; } }`)
	outer := sheet.Statements[0].(*ast.StyleRule)
	inner, ok := outer.Body[0].(*ast.StyleRule)
	require.True(t, ok)
	assert.Equal(t, "&:hover", inner.Prelude.PlainText())
}

func TestParseInterpolatedSelector(t *testing.T) {
	sheet := parseSCSS(t, `.icon-#{$name} { display: block; }`)
	rule := sheet.Statements[0].(*ast.StyleRule)
	require.Len(t, rule.Prelude.Exprs, 1)
	ref, ok := rule.Prelude.Exprs[0].(*ast.VarRef)
	require.True(t, ok)
	assert.Equal(t, "name", ref.Name)
}

func TestParseCustomProperty(t *testing.T) {
	sheet := parseSCSS(t, `.box { --main-color: #fff; }`)
	rule := sheet.Statements[0].(*ast.StyleRule)
	cp, ok := rule.Body[0].(*ast.CustomPropertyDecl)
	require.True(t, ok)
	assert.Equal(t, "--main-color", cp.Name)
}

func TestParseIfElseChain(t *testing.T) {
	sheet := parseSCSS(t, `
		@if $a == 1 {
			x: 1;
		} @else if $a == 2 {
			x: 2;
		} @else {
			x: 3;
		}
	`)
	stmt, ok := sheet.Statements[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, stmt.Clauses, 3)
	assert.NotNil(t, stmt.Clauses[0].Cond)
	assert.NotNil(t, stmt.Clauses[1].Cond)
	assert.Nil(t, stmt.Clauses[2].Cond)
}

func TestParseEachOverMap(t *testing.T) {
	sheet := parseSCSS(t, `@each $k, $v in (a: 1, b: 2) { x: $v; }`)
	each, ok := sheet.Statements[0].(*ast.Each)
	require.True(t, ok)
	assert.Equal(t, []string{"k", "v"}, each.Vars)
	m, ok := each.List.(*ast.MapExpr)
	require.True(t, ok)
	assert.Len(t, m.Keys, 2)
}

func TestParseForThrough(t *testing.T) {
	sheet := parseSCSS(t, `@for $i from 1 through 3 { x: $i; }`)
	f, ok := sheet.Statements[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "i", f.Var)
	assert.False(t, f.Exclusive)
}

func TestParseMixinAndInclude(t *testing.T) {
	sheet := parseSCSS(t, `
		@mixin button($color: blue) {
			background: $color;
			@content;
		}
		.a {
			@include button(red) {
				border: none;
			}
		}
	`)
	mx, ok := sheet.Statements[0].(*ast.MixinDecl)
	require.True(t, ok)
	assert.True(t, mx.AcceptsContent)
	require.Len(t, mx.Params, 1)
	assert.Equal(t, "color", mx.Params[0].Name)

	rule := sheet.Statements[1].(*ast.StyleRule)
	inc, ok := rule.Body[0].(*ast.Include)
	require.True(t, ok)
	assert.Equal(t, "button", inc.Name)
	require.NotNil(t, inc.Content)
	require.Len(t, inc.Content.Statements, 1)
}

func TestParseFunctionDecl(t *testing.T) {
	sheet := parseSCSS(t, `
		@function double($n) {
			@return $n * 2;
		}
	`)
	fn, ok := sheet.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.Return)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Op)
}

func TestParseUseWithNamespaceAndConfig(t *testing.T) {
	sheet := parseSCSS(t, `@use "sass:math" as math with ($base: 16px);`)
	use, ok := sheet.Statements[0].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, "sass:math", use.URL)
	assert.Equal(t, "math", use.Namespace)
	require.Len(t, use.Configuration, 1)
	assert.Equal(t, "base", use.Configuration[0].Name)
}

func TestParseMediaQuery(t *testing.T) {
	sheet := parseSCSS(t, `@media (min-width: 768px) { .a { color: red; } }`)
	m, ok := sheet.Statements[0].(*ast.Media)
	require.True(t, ok)
	assert.Equal(t, "(min-width: 768px)", m.Query.PlainText())
}

func TestParseSupportsCondition(t *testing.T) {
	sheet := parseSCSS(t, `@supports (display: grid) and (gap: 1px) { .a { color: red; } }`)
	s, ok := sheet.Statements[0].(*ast.Supports)
	require.True(t, ok)
	op, ok := s.Condition.(*ast.SupportsOperation)
	require.True(t, ok)
	assert.Equal(t, "and", op.Op)
}

func TestParseKeyframes(t *testing.T) {
	sheet := parseSCSS(t, `
		@keyframes fade {
			from { opacity: 0; }
			50% { opacity: .5; }
			to { opacity: 1; }
		}
	`)
	kf, ok := sheet.Statements[0].(*ast.Keyframes)
	require.True(t, ok)
	assert.Equal(t, "fade", kf.Name)
	require.Len(t, kf.Body, 3)
}

func TestParseBracketedAndCommaList(t *testing.T) {
	sheet := parseSCSS(t, `$x: [a, b, c];`)
	v := sheet.Statements[0].(*ast.VarDecl)
	list, ok := v.Value.(*ast.ListExpr)
	require.True(t, ok)
	assert.True(t, list.Bracketed)
	assert.Equal(t, ast.SepComma, list.Sep)
	assert.Len(t, list.Elems, 3)
}

func TestParseIndentedSyntax(t *testing.T) {
	src := "" +
		".box\n" +
		"  color: red\n" +
		"  &:hover\n" +
		"    color: blue\n"
	sheet, err := parser.ParseStylesheet(src, "test.sass", lexer.SyntaxSass, 0)
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)
	rule, ok := sheet.Statements[0].(*ast.StyleRule)
	require.True(t, ok)
	require.Len(t, rule.Body, 2)
	_, ok = rule.Body[1].(*ast.StyleRule)
	assert.True(t, ok)
}
