package sassgo_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo"
	"github.com/titpetric/sassgo/value"
)

func TestCompileStringExpanded(t *testing.T) {
	out, err := sassgo.CompileString(".box { color: red; }", "main.scss", sassgo.Options{})
	require.NoError(t, err)
	assert.Equal(t, ".box {\n  color: red;\n}\n", out.CSS)
}

func TestCompileStringCompressed(t *testing.T) {
	out, err := sassgo.CompileString(".box { color: red; }", "main.scss", sassgo.Options{Style: sassgo.OutputCompressed})
	require.NoError(t, err)
	assert.Equal(t, ".box{color:red}", out.CSS)
}

func TestCompileStringVariablesAndNesting(t *testing.T) {
	src := `
$base: 10px;
.box {
  padding: $base;
  .inner { padding: $base * 2; }
}
`
	out, err := sassgo.CompileString(src, "main.scss", sassgo.Options{})
	require.NoError(t, err)
	assert.Contains(t, out.CSS, ".box {")
	assert.Contains(t, out.CSS, ".box .inner {")
	assert.Contains(t, out.CSS, "padding: 10px;")
	assert.Contains(t, out.CSS, "padding: 20px;")
}

func TestCompileUsesFilesystemEntry(t *testing.T) {
	fsys := fstest.MapFS{
		"main.scss":    {Data: []byte(`@use "colors"; .box { color: colors.$accent; }`)},
		"_colors.scss": {Data: []byte(`$accent: blue;`)},
	}
	out, err := sassgo.Compile(sassgo.CompileInput{FS: fsys, Path: "main.scss"})
	require.NoError(t, err)
	assert.Equal(t, ".box {\n  color: blue;\n}\n", out.CSS)
	assert.Len(t, out.LoadedURLs, 2)
}

func TestCompileReportsMissingImport(t *testing.T) {
	fsys := fstest.MapFS{
		"main.scss": {Data: []byte(`@use "nope";`)},
	}
	_, err := sassgo.Compile(sassgo.CompileInput{FS: fsys, Path: "main.scss"})
	require.Error(t, err)
}

func TestCompileStringHostFunction(t *testing.T) {
	opts := sassgo.Options{
		Functions: []sassgo.Function{
			{
				Name:    "double",
				MinArgs: 1,
				MaxArgs: 1,
				Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
					n := args[0].(*value.Number)
					unit := ""
					if len(n.Numer) > 0 {
						unit = n.Numer[0]
					}
					return value.NewNumberUnit(n.Val*2, unit), nil
				},
			},
		},
	}
	out, err := sassgo.CompileString(".box { width: double(5px); }", "main.scss", opts)
	require.NoError(t, err)
	assert.Contains(t, out.CSS, "width: 10px;")
}

func TestCompileStringSourceMap(t *testing.T) {
	out, err := sassgo.CompileString(".box { color: red; }", "main.scss", sassgo.Options{SourceMap: true})
	require.NoError(t, err)
	assert.Contains(t, out.CSS, "sourceMappingURL=main.css.map")
	assert.Contains(t, out.SourceMap, `"version":3`)
}

func TestCompileStringSourceMapEmbedded(t *testing.T) {
	out, err := sassgo.CompileString(".box { color: red; }", "main.scss", sassgo.Options{SourceMap: true, SourceMapEmbed: true})
	require.NoError(t, err)
	assert.Contains(t, out.CSS, "sourceMappingURL=data:application/json;base64,")
}
