package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/serializer"
)

var zero diag.Span

func sampleSheet() *css.Stylesheet {
	decl := css.NewDeclaration("color", "red", false, zero)
	rule := css.NewStyleRule(".box, .panel", []css.Node{decl}, zero)
	return css.NewStylesheet([]css.Node{rule}, zero)
}

func TestSerializeExpanded(t *testing.T) {
	out, err := serializer.Serialize(sampleSheet(), nil, serializer.Options{Style: serializer.StyleExpanded})
	require.NoError(t, err)
	assert.Equal(t, ".box, .panel {\n  color: red;\n}\n", out.CSS)
}

func TestSerializeCompressed(t *testing.T) {
	out, err := serializer.Serialize(sampleSheet(), nil, serializer.Options{Style: serializer.StyleCompressed})
	require.NoError(t, err)
	assert.Equal(t, ".box,.panel{color:red}", out.CSS)
}

func TestSerializeImportantFlag(t *testing.T) {
	decl := css.NewDeclaration("color", "red", true, zero)
	rule := css.NewStyleRule(".box", []css.Node{decl}, zero)
	sheet := css.NewStylesheet([]css.Node{rule}, zero)

	out, err := serializer.Serialize(sheet, nil, serializer.Options{Style: serializer.StyleCompressed})
	require.NoError(t, err)
	assert.Equal(t, ".box{color:red !important}", out.CSS)
}

func TestSerializeMultipleDeclarationsCompressed(t *testing.T) {
	decls := []css.Node{
		css.NewDeclaration("margin", "0.5px", false, zero),
		css.NewDeclaration("padding", "-0.25em", false, zero),
	}
	rule := css.NewStyleRule(".box", decls, zero)
	sheet := css.NewStylesheet([]css.Node{rule}, zero)

	out, err := serializer.Serialize(sheet, nil, serializer.Options{Style: serializer.StyleCompressed})
	require.NoError(t, err)
	assert.Equal(t, ".box{margin:.5px;padding:-.25em}", out.CSS)
}

func TestSerializeFontFaceFlatDeclarations(t *testing.T) {
	decls := []css.Node{
		css.NewDeclaration("font-family", `"Example"`, false, zero),
		css.NewDeclaration("src", `url("example.woff2")`, false, zero),
	}
	rule := css.NewAtRule(css.AtRuleFontFace, "font-face", "", decls, zero)
	sheet := css.NewStylesheet([]css.Node{rule}, zero)

	out, err := serializer.Serialize(sheet, nil, serializer.Options{Style: serializer.StyleCompressed})
	require.NoError(t, err)
	assert.Equal(t, `@font-face{font-family:"Example";src:url("example.woff2")}`, out.CSS)
}

func TestSerializeNestedAtRule(t *testing.T) {
	decl := css.NewDeclaration("color", "red", false, zero)
	inner := css.NewStyleRule(".box", []css.Node{decl}, zero)
	media := css.NewAtRule(css.AtRuleMedia, "media", "screen", []css.Node{inner}, zero)
	sheet := css.NewStylesheet([]css.Node{media}, zero)

	out, err := serializer.Serialize(sheet, nil, serializer.Options{Style: serializer.StyleExpanded})
	require.NoError(t, err)
	assert.Equal(t, "@media screen {\n  .box {\n    color: red;\n  }\n}\n", out.CSS)
}

func TestSerializeCharsetOnNonASCII(t *testing.T) {
	decl := css.NewDeclaration("content", `"café"`, false, zero)
	rule := css.NewStyleRule(".box", []css.Node{decl}, zero)
	sheet := css.NewStylesheet([]css.Node{rule}, zero)

	out, err := serializer.Serialize(sheet, nil, serializer.Options{Style: serializer.StyleExpanded, Charset: true})
	require.NoError(t, err)
	assert.Equal(t, "@charset \"UTF-8\";\n.box {\n  content: \"café\";\n}\n", out.CSS)
}

func TestSerializeCharsetSkippedWhenASCIIOnly(t *testing.T) {
	out, err := serializer.Serialize(sampleSheet(), nil, serializer.Options{Style: serializer.StyleExpanded, Charset: true})
	require.NoError(t, err)
	assert.NotContains(t, out.CSS, "@charset")
}

func TestSerializeSourceMapTracksSpans(t *testing.T) {
	files := []*diag.SourceFile{{URL: "main.scss", Text: ".box {\n  color: red;\n}\n"}}
	declSpan := diag.Span{Start: 9, End: 19, Source: 0}
	decl := css.NewDeclaration("color", "red", false, declSpan)
	rule := css.NewStyleRule(".box", []css.Node{decl}, diag.Span{Start: 0, End: 23, Source: 0})
	sheet := css.NewStylesheet([]css.Node{rule}, diag.Span{Source: 0})

	out, err := serializer.Serialize(sheet, files, serializer.Options{
		Style:     serializer.StyleExpanded,
		SourceMap: true,
		OutputURL: "main.css",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.SourceMap)
	assert.Contains(t, out.SourceMap, `"version":3`)
	assert.Contains(t, out.SourceMap, `"main.scss"`)
	assert.Contains(t, out.CSS, "sourceMappingURL=main.css.map")
}
